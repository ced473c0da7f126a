// Package types defines the grammar tree entities, argument types, field
// limits, configuration, and standard errors for the bce completion engine.
//
// A grammar tree is rooted at a top-level Command. Each Command owns its
// aliases, arguments, and sub-commands; each CommandArg owns its options.
// Parent references (ParentID, CommandID, ArgID) are lookup keys only.
package types
