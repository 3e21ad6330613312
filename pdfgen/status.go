package pdfgen

// Status reports backend availability without triggering a render. It backs
// the operational diagnostic endpoint.
type Status struct {
	PrimaryBackend         PrimaryStatus  `json:"primary_backend"`
	ExternalBackend        ExternalStatus `json:"external_backend"`
	ConfiguredExternalPath string         `json:"configured_external_path"`
}

// All fields are always emitted so the payload shape is stable for operators
// regardless of which probes succeeded.
type PrimaryStatus struct {
	Available bool   `json:"available"`
	Version   string `json:"version"`
	Error     string `json:"error"`
}

type ExternalStatus struct {
	Found   bool   `json:"found"`
	Path    string `json:"path"`
	Version string `json:"version"`
	Error   string `json:"error"`
}

// Probe inspects both backends. The primary engine is compiled in, so it is
// always importable; render-time failures surface through the cascade
// diagnostics instead.
func Probe(external *WkhtmltopdfBackend) Status {
	s := Status{
		PrimaryBackend:         PrimaryStatus{Available: true, Version: primaryVersion},
		ConfiguredExternalPath: external.ConfiguredPath,
	}

	path, err := external.Locate()
	if err != nil {
		s.ExternalBackend.Error = err.Error()
		return s
	}
	s.ExternalBackend.Found = true
	s.ExternalBackend.Path = path

	version, err := external.Version()
	if err != nil {
		s.ExternalBackend.Error = err.Error()
		return s
	}
	s.ExternalBackend.Version = version
	return s
}
