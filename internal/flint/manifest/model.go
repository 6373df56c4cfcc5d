package manifest

import (
	"encoding/json"

	"github.com/lukeha98/flint-gradle/internal/flint/store"
)

// InstructionType identifies one of the closed set of instruction kinds.
type InstructionType string

const (
	// TypeDownloadMavenDependency installs a jar from a maven repository.
	TypeDownloadMavenDependency InstructionType = "DOWNLOAD_MAVEN_DEPENDENCY"
	// TypeDownloadFile installs a verbatim file from a URL.
	TypeDownloadFile InstructionType = "DOWNLOAD_FILE"
	// TypeModifyJSONFile applies declarative injections to a JSON file.
	TypeModifyJSONFile InstructionType = "MODIFY_JSON_FILE"
)

// DownloadMavenDependency is the payload of a maven download instruction.
type DownloadMavenDependency struct {
	Group      string `json:"group"`
	Name       string `json:"name"`
	Version    string `json:"version"`
	Classifier string `json:"classifier,omitempty"`
	URL        string `json:"url"`
	Path       string `json:"path"`
}

// DownloadFile is the payload of a static file download instruction.
type DownloadFile struct {
	URL      string         `json:"url"`
	Path     string         `json:"path"`
	Checksum store.Checksum `json:"checksum"`
}

// JSONInjection is one declarative change applied inside a JSON file.
type JSONInjection struct {
	Type  string   `json:"type"`
	Path  []string `json:"path,omitempty"`
	Key   string   `json:"key,omitempty"`
	Value any      `json:"value"`
}

// ModifyJSONFile is the payload of a JSON modification instruction.
//
// All injections against the same target file and pretty-print flag are
// carried by one instruction so the installer opens the file once.
type ModifyJSONFile struct {
	Path       string          `json:"path"`
	Pretty     bool            `json:"prettyPrint"`
	Injections []JSONInjection `json:"injections"`
}

// Instruction is one portable install step.
//
// Exactly one payload pointer is set, selected by Type. Keeping the variants
// as a closed struct instead of an open interface lets synthesis and any
// downstream installer switch over them exhaustively.
type Instruction struct {
	Type InstructionType `json:"type"`
	OS   string          `json:"operatingSystem,omitempty"`

	DownloadMavenDependency *DownloadMavenDependency `json:"downloadMavenDependency,omitempty"`
	DownloadFile            *DownloadFile            `json:"downloadFile,omitempty"`
	ModifyJSONFile          *ModifyJSONFile          `json:"modifyJsonFile,omitempty"`
}

// TargetPath returns the install path the instruction writes to.
func (i Instruction) TargetPath() string {
	switch i.Type {
	case TypeDownloadMavenDependency:
		return i.DownloadMavenDependency.Path
	case TypeDownloadFile:
		return i.DownloadFile.Path
	case TypeModifyJSONFile:
		return i.ModifyJSONFile.Path
	default:
		return ""
	}
}

// dedupKey renders the instruction into a structural identity string.
//
// Two instructions with equal kind and payload collapse to one, since
// multiple dependency edges can resolve to the same coordinate.
func (i Instruction) dedupKey() string {
	raw, err := json.Marshal(i)
	if err != nil {
		return string(i.Type) + "|" + i.TargetPath()
	}
	return string(raw)
}

// Dependency names another package the installed package requires.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Channel string `json:"channel"`
}

// Package is the serialized manifest document.
type Package struct {
	Group             string        `json:"group"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Version           string        `json:"version"`
	Channel           string        `json:"channel"`
	MinecraftVersions string        `json:"minecraftVersions"`
	FlintVersion      string        `json:"flintVersion"`
	Authors           []string      `json:"authors"`
	Dependencies      []Dependency  `json:"dependencies"`
	RuntimeClasspath  []string      `json:"runtimeClasspath"`
	Instructions      []Instruction `json:"installInstructions"`
}
