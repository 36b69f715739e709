// Package services implements the driving ports: the build orchestrator
// that runs full passes over the source tree, and the watcher that
// triggers rebuilds on filesystem changes.
package services
