// Package model provides the record types shared by the storefront core.
//
// This package contains type definitions only. All other internal packages
// import model; model imports nothing internal.
//
// Key design constraints:
//   - Money is always int64 minor units (cents), never floats
//   - Optional columns are pointers; nil means NULL
//   - All JSON tags use snake_case, matching the backing store's column names
package model
