// Package ports declares the driven-side interfaces of the calculator core,
// plus the reusable contract suite adapters verify themselves against.
package ports
