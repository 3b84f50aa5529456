// Package interchange defines the external representation of the
// program/workout/exercise hierarchy shared by importers and exporters.
//
// Field names at this boundary use underscore-separated words; the store
// entities use their own naming and the conversion lives here.
package interchange
