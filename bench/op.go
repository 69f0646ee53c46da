package bench

import "fmt"

// Op names one benchmarked operation. The names double as the
// benchmark column in machine-readable output and as the configuration
// spelling.
type Op string

const (
	OpBuildFromRange     Op = "buildFromRange"
	OpBuildIncrementally Op = "buildIncrementally"
	OpFoldLeft           Op = "foldLeft"
	OpFoldRight          Op = "foldRight"
	OpMap                Op = "map"
	OpFilter             Op = "filter"
	OpConcat             Op = "concat"
	OpHead               Op = "head"
	OpTailRecursiveLast  Op = "tailRecursiveLast"
	OpInsertUnique       Op = "insertUnique"
)

// AllOps lists every operation in report order.
var AllOps = []Op{
	OpBuildFromRange,
	OpBuildIncrementally,
	OpFoldLeft,
	OpFoldRight,
	OpMap,
	OpFilter,
	OpConcat,
	OpHead,
	OpTailRecursiveLast,
	OpInsertUnique,
}

// ParseOp parses a configured operation name.
func ParseOp(s string) (Op, error) {
	for _, op := range AllOps {
		if s == string(op) {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q", s)
}
