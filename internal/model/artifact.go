package model

// RenderedScenario is the emitted form of a scenario: final deduplicated test
// name plus formatted source. The struct carries no interface values so that
// blocks spill to disk through gob without type registration.
type RenderedScenario struct {
	ID          string
	Kind        ScenarioKind
	Name        string
	Description string
	Code        string
}

// FileBlock is the rendered section of the artifact for one analyzed file,
// with scenarios in generation order. Files with no declarations still
// produce a block so the artifact records them with a header.
type FileBlock struct {
	File      Path
	Scenarios []RenderedScenario
	Report    FileReport
}
