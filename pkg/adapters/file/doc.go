// Package file loads graph documents from a directory of YAML or JSON
// files.
package file
