package scene

import (
	"github.com/dd0wney/cluso-graphscene/pkg/edgelist"
)

func recordOf(row int, source, target string) edgelist.Record {
	return edgelist.Record{Row: row, Source: source, Target: target}
}
