package libtt

import (
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// TrackExpr is the textual form of a train track: one parenthesized outgoing
// list per oriented switch in the order +1, -1, +2, -2, ..., optionally
// followed by a colon and one weight per branch label:
//
//	(-1 2 3) (-2 4 -3) (5) (-5 -4 1) : 11 3 100 11 2
type TrackExpr struct {
	Switches []*SwitchExpr `parser:"@@+"`
	Measures []*IntLit     `parser:"(':' @@+)?"`
}

type SwitchExpr struct {
	Branches []*IntLit `parser:"'(' @@+ ')'"`
}

type IntLit struct {
	Neg   bool  `parser:"@'-'?"`
	Value int64 `parser:"@Int"`
}

func (lit *IntLit) val() int64 {
	if lit.Neg {
		return -lit.Value
	}
	return lit.Value
}

var parseTrackExpr = participle.MustBuild[TrackExpr]()

// NewTrackFromString parses a TrackExpr and builds the track it denotes.
func NewTrackFromString(trackExpr string) (*TrainTrack, error) {
	expr, err := parseTrackExpr.ParseString("", trackExpr)
	if err != nil {
		return nil, errors.Wrap(err, "parsing track expr")
	}

	gluing := make([][]Branch, 0, len(expr.Switches))
	for _, sw := range expr.Switches {
		list := make([]Branch, 0, len(sw.Branches))
		for _, lit := range sw.Branches {
			list = append(list, Branch(lit.val()))
		}
		gluing = append(gluing, list)
	}

	var measure []int64
	if len(expr.Measures) > 0 {
		measure = make([]int64, 0, len(expr.Measures))
		for _, lit := range expr.Measures {
			measure = append(measure, lit.val())
		}
	}

	return NewTrainTrack(gluing, measure)
}
