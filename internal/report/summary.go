package report

import (
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/a11yscan/a11yscan/internal/model"
)

// SummaryWriter renders a Markdown digest of a merged work list: how
// many unique violations remain, broken down by impact and by rule.
// The digest is meant for sharing in issues and pull requests, next to
// the spreadsheet that carries the full detail.
type SummaryWriter struct {
	output io.Writer
}

// NewSummaryWriter creates a SummaryWriter that writes to output.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{output: output}
}

// Write renders the summary for the given work-list records.
func (w *SummaryWriter) Write(records []model.ViolationRecord) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Accessibility Work List")
	md.PlainText("")
	md.PlainTextf("%d unique violations to address.", len(records))
	md.PlainText("")

	w.writeImpactTable(md, records)
	w.writeRuleTable(md, records)

	return md.Build()
}

// writeImpactTable writes the per-impact breakdown, most severe first.
func (w *SummaryWriter) writeImpactTable(md *markdown.Markdown, records []model.ViolationRecord) {
	counts := make(map[model.Impact]int)
	for _, r := range records {
		counts[model.ParseImpact(r.Impact)]++
	}

	md.H2("By Impact")
	md.PlainText("")

	rows := make([][]string, 0, len(counts))
	for _, impact := range []model.Impact{
		model.ImpactCritical,
		model.ImpactSerious,
		model.ImpactModerate,
		model.ImpactMinor,
		model.ImpactUnknown,
	} {
		if n, ok := counts[impact]; ok {
			rows = append(rows, []string{impact.String(), strconv.Itoa(n)})
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Impact", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeRuleTable writes the per-rule breakdown, largest group first.
func (w *SummaryWriter) writeRuleTable(md *markdown.Markdown, records []model.ViolationRecord) {
	type ruleGroup struct {
		id     string
		help   string
		impact string
		count  int
	}

	groups := make(map[string]*ruleGroup)
	order := make([]string, 0)
	for _, r := range records {
		g, ok := groups[r.ID]
		if !ok {
			g = &ruleGroup{id: r.ID, help: r.Help, impact: r.Impact}
			groups[r.ID] = g
			order = append(order, r.ID)
		}
		g.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return groups[order[i]].count > groups[order[j]].count
	})

	md.H2("By Rule")
	md.PlainText("")

	rows := make([][]string, 0, len(order))
	for _, id := range order {
		g := groups[id]
		rows = append(rows, []string{
			"`" + g.id + "`",
			g.impact,
			strconv.Itoa(g.count),
			g.help,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rule", "Impact", "Count", "Help"},
		Rows:   rows,
	})
	md.PlainText("")
}
