// Package types defines the domain entities, store interfaces, and standard
// errors shared by the scantrack scanning engine, storage backends, and CLI.
package types
