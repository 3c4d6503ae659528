package fixture

import "github.com/glorpus-work/goldfix/pkg/model"

// Source resolves run requests against a suite tree on disk. It is the
// standard case source wired into the orchestrator.
type Source struct {
	scanner *Scanner
}

// NewSource creates a case source for a suite rooted at the given directory.
func NewSource(suite, root string, layout Layout) *Source {
	return &Source{scanner: NewScanner(suite, root, layout)}
}

// Cases returns the cases selected by the request, sorted by name. An empty
// case list in the request selects the whole suite.
func (s *Source) Cases(req model.RunRequest) ([]*model.Case, error) {
	cases, err := s.scanner.Scan()
	if err != nil {
		return nil, err
	}
	return FilterCases(cases, req.Cases)
}
