package compare

import "fmt"

// ErrStructureParse indicates one side of a structure comparison is not
// parseable source.
var ErrStructureParse = fmt.Errorf("source failed to parse")
