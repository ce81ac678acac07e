// Package citation extracts reference mentions from canonical text and
// summarizes them as citation statistics plus a citation network. Extraction
// is purely heuristic: the three mention patterns from the shared pattern
// library are applied independently and their matches unioned, so the same
// passage can legitimately count twice when two styles overlap. The output
// is a set of heuristic mentions, not a validated bibliography.
package citation

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/paperscope/paperscope/patterns"
)

// Mention is one raw citation occurrence in the text.
type Mention struct {
	RawMention string `json:"raw_mention"`
	Author     string `json:"author,omitempty"`
	Year       int    `json:"year,omitempty"`
}

// NetworkNode is an author node in the citation network.
type NetworkNode struct {
	Author string `json:"author"`
	Title  string `json:"title,omitempty"`
}

// NetworkEdge links two author nodes. The default analyzer never produces
// edges; see EdgeLinker.
type NetworkEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Network is the author graph summary. Edges stay empty unless an
// EdgeLinker is installed, so the summary is primarily node and edge
// counts rather than a connectivity structure.
type Network struct {
	Nodes    int           `json:"nodes"`
	Edges    int           `json:"edges"`
	NodeData []NetworkNode `json:"network_data,omitempty"`
}

// Stats aggregates the extracted years.
type Stats struct {
	AvgCitationAge    float64 `json:"avg_citation_age"`
	CitationDiversity int     `json:"citation_diversity"`
	SelfCitations     int     `json:"self_citations"`
}

// Report is the full citation analysis result.
type Report struct {
	TotalCitations   int       `json:"total_citations"`
	Mentions         []Mention `json:"mentions,omitempty"`
	Network          Network   `json:"citation_network"`
	TopAuthors       []string  `json:"most_cited_authors"`
	PublicationYears []int     `json:"publication_years"`
	Analysis         Stats     `json:"citation_analysis"`
	Error            string    `json:"error,omitempty"`
}

// ErrorReport returns a zero-valued report carrying an error message, so
// callers can always render a structurally complete result.
func ErrorReport(msg string) Report {
	return Report{
		TopAuthors:       []string{},
		PublicationYears: []int{},
		Error:            msg,
	}
}

// EdgeLinker is an optional extension point for building co-citation edges
// between author nodes. The default analyzer leaves it nil and produces a
// node-only network.
type EdgeLinker interface {
	Link(nodes []NetworkNode) []NetworkEdge
}

// maxMentions caps the mention list included in the report (the total
// count still reflects every match).
const maxMentions = 20

// maxNetworkNodes caps the node data echoed in the network summary.
const maxNetworkNodes = 10

// Analyzer extracts citation mentions and statistics.
type Analyzer struct {
	linker EdgeLinker // optional
	now    func() time.Time
}

// NewAnalyzer returns a citation analyzer. linker may be nil.
func NewAnalyzer(linker EdgeLinker) *Analyzer {
	return &Analyzer{linker: linker, now: time.Now}
}

// Analyze runs all mention patterns over the text and aggregates years and
// candidate authors.
func (a *Analyzer) Analyze(text string) Report {
	var raw []string
	for _, p := range []*regexp.Regexp{
		patterns.NumericCitation,
		patterns.ParentheticalCitation,
		patterns.NarrativeCitation,
	} {
		raw = append(raw, p.FindAllString(text, -1)...)
	}

	mentions := buildMentions(raw)
	years := extractYears(text)
	authors := topAuthors(text, 5)

	report := Report{
		TotalCitations:   len(raw),
		Mentions:         mentions,
		TopAuthors:       authors,
		PublicationYears: distinctYears(years, 10),
		Analysis: Stats{
			AvgCitationAge:    a.avgCitationAge(years),
			CitationDiversity: len(uniqueStrings(raw)),
		},
	}
	report.Network = a.buildNetwork(mentions)
	return report
}

// buildMentions parses author and year out of each raw match. Mentions
// sharing both author and year collapse to one entry; everything else is
// kept verbatim.
func buildMentions(raw []string) []Mention {
	seen := make(map[string]bool)
	var mentions []Mention
	for _, r := range raw {
		m := Mention{RawMention: r}
		if y := patterns.Year.FindString(r); y != "" {
			m.Year, _ = strconv.Atoi(y)
		}
		if am := patterns.AuthorYear.FindStringSubmatch(r); len(am) > 1 {
			m.Author = am[1]
		}
		if m.Author != "" && m.Year != 0 {
			key := m.Author + "|" + strconv.Itoa(m.Year)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		if len(mentions) < maxMentions {
			mentions = append(mentions, m)
		}
	}
	return mentions
}

// extractYears finds every four-digit year in [1900, 2099], in order of
// appearance (duplicates preserved).
func extractYears(text string) []int {
	var years []int
	for _, y := range patterns.Year.FindAllString(text, -1) {
		n, err := strconv.Atoi(y)
		if err != nil {
			continue
		}
		years = append(years, n)
	}
	return years
}

// distinctYears returns unique years in first-seen order, capped at limit.
func distinctYears(years []int, limit int) []int {
	seen := make(map[int]bool)
	out := []int{}
	for _, y := range years {
		if seen[y] {
			continue
		}
		seen[y] = true
		out = append(out, y)
		if len(out) == limit {
			break
		}
	}
	return out
}

// topAuthors extracts capitalized name-like tokens adjacent to year tokens
// and returns the n most frequent, ties broken by first appearance.
func topAuthors(text string, n int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, m := range patterns.AuthorYear.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		if _, ok := firstSeen[name]; !ok {
			firstSeen[name] = i
		}
		counts[name]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return firstSeen[names[i]] < firstSeen[names[j]]
	})

	if len(names) > n {
		names = names[:n]
	}
	if names == nil {
		names = []string{}
	}
	return names
}

// avgCitationAge is the mean of (current year - year) over all extracted
// years, 0 when no years were found.
func (a *Analyzer) avgCitationAge(years []int) float64 {
	if len(years) == 0 {
		return 0
	}
	current := a.now().Year()
	sum := 0
	for _, y := range years {
		sum += current - y
	}
	return float64(sum) / float64(len(years))
}

// buildNetwork creates one node per distinct mention author ("Unknown" for
// authorless mentions with a year). Edge construction is delegated to the
// optional linker; without one the edge list is empty.
func (a *Analyzer) buildNetwork(mentions []Mention) Network {
	seen := make(map[string]bool)
	var nodes []NetworkNode
	for _, m := range mentions {
		author := m.Author
		if author == "" {
			if m.Year == 0 {
				continue
			}
			author = "Unknown"
		}
		if seen[author] {
			continue
		}
		seen[author] = true
		nodes = append(nodes, NetworkNode{Author: author})
	}

	var edges []NetworkEdge
	if a.linker != nil {
		edges = a.linker.Link(nodes)
	}

	data := nodes
	if len(data) > maxNetworkNodes {
		data = data[:maxNetworkNodes]
	}
	return Network{Nodes: len(nodes), Edges: len(edges), NodeData: data}
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// String renders a short human-readable summary.
func (r Report) String() string {
	return fmt.Sprintf("%d citations, %d distinct years, %d authors",
		r.TotalCitations, len(r.PublicationYears), len(r.TopAuthors))
}
