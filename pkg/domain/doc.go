// Package domain holds the core calculator types: the session State, the
// capped history Ledger, the memory Bank, and the sentinel errors shared by
// the engine and its adapters. It has no behavior beyond invariant-keeping
// on its own data and depends on nothing inside the module.
package domain
