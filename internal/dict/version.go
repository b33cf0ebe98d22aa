package dict

import "fmt"

// Readiness is the coarse lifecycle state of the local store
type Readiness int

const (
	ReadinessInitializing Readiness = iota
	ReadinessEmpty
	ReadinessReady
)

// String returns the display name for the readiness state
func (r Readiness) String() string {
	switch r {
	case ReadinessInitializing:
		return "initializing"
	case ReadinessEmpty:
		return "empty"
	case ReadinessReady:
		return "ready"
	default:
		return "unknown"
	}
}

// VersionTriple is a three-part data set version
type VersionTriple struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// String renders the triple as "major.minor.patch"
func (v VersionTriple) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// VersionInfo is the metadata of one installed data set
type VersionInfo struct {
	VersionTriple
	DatabaseVersion string `json:"databaseVersion"` // Version string from the source database
	DateOfCreation  string `json:"dateOfCreation"`  // Date the source snapshot was generated
	Lang            string `json:"lang"`            // Language code of the glosses
}
