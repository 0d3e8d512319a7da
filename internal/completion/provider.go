package completion

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/redtime-cli/redtime/internal/catalog"
	"github.com/redtime-cli/redtime/internal/logger"
	"github.com/redtime-cli/redtime/internal/registry"
)

// Provider computes completion candidates for the redtime command surface.
// Every request degrades to an empty response rather than an error: the
// command line being incomplete or unknown is the normal case mid-keystroke.
type Provider struct {
	reg    *registry.Registry
	source catalog.Source
	log    *logger.Logger
	now    func() time.Time
}

// NewProvider creates a provider over the given registry and catalog.
func NewProvider(reg *registry.Registry, source catalog.Source, log *logger.Logger) *Provider {
	return &Provider{
		reg:    reg,
		source: source,
		log:    log,
		now:    time.Now,
	}
}

// ListCommands returns every top-level sub-command, in registry order.
func (p *Provider) ListCommands() []Candidate {
	commands := p.reg.Commands()
	candidates := make([]Candidate, 0, len(commands))
	for _, cmd := range commands {
		candidates = append(candidates, Candidate{
			Value:       cmd.Name,
			Description: cmd.Usage,
			Kind:        KindCommand,
		})
	}
	return candidates
}

// ListOptions returns the flags of the named sub-command. Context is limited
// to the command name only; an unknown name yields an empty response.
func (p *Provider) ListOptions(commandName string) []Candidate {
	cmd, ok := p.reg.Lookup(commandName)
	if !ok {
		return []Candidate{}
	}

	candidates := []Candidate{}
	for _, opt := range cmd.Options {
		for _, name := range opt.Names {
			candidates = append(candidates, Candidate{
				Value:       name,
				Description: opt.Usage,
				Kind:        KindOption,
			})
		}
	}
	return candidates
}

// ListArguments returns candidates for the token at index nth, given
// everything typed so far. Index 0 is the tool name, index 1 the
// sub-command.
func (p *Provider) ListArguments(ctx context.Context, tokens []string, nth int) []Candidate {
	if len(tokens) < 2 || nth < 2 {
		return []Candidate{}
	}

	cmd, ok := p.reg.Lookup(tokens[1])
	if !ok || len(cmd.Args) == 0 {
		return []Candidate{}
	}

	arg, typed, ok := resolvePositional(cmd, tokens, nth)
	if !ok {
		return []Candidate{}
	}

	prefix := ""
	if nth < len(tokens) {
		prefix = tokens[nth]
	}

	return p.completeArgument(ctx, arg, prefix, typed)
}

// resolvePositional maps the cursor index to a positional parameter,
// skipping option tokens and their values, and collects the values already
// typed for earlier positionals.
func resolvePositional(cmd registry.Command, tokens []string, nth int) (registry.Arg, map[string]string, bool) {
	end := nth
	if end > len(tokens) {
		end = len(tokens)
	}

	typed := map[string]string{}
	pos := 0
	skip := 0
	for _, tok := range tokens[2:end] {
		switch {
		case skip > 0:
			skip--
		case strings.HasPrefix(tok, "-"):
			if opt, ok := cmd.Option(tok); ok && opt.TakesValue && !strings.Contains(tok, "=") {
				skip = 1
			}
		default:
			if pos < len(cmd.Args) {
				typed[cmd.Args[pos].Name] = tok
			}
			pos++
		}
	}

	if pos >= len(cmd.Args) {
		last := cmd.Args[len(cmd.Args)-1]
		if !last.Variadic {
			return registry.Arg{}, nil, false
		}
		return last, typed, true
	}
	return cmd.Args[pos], typed, true
}

// completeArgument generates candidates for one positional parameter.
func (p *Provider) completeArgument(ctx context.Context, arg registry.Arg, prefix string, typed map[string]string) []Candidate {
	switch arg.Kind {
	case registry.KindProject:
		return p.projectCandidates(ctx, prefix)
	case registry.KindIssue:
		return p.issueCandidates(ctx, prefix, typedProjectID(typed))
	case registry.KindActivity:
		return p.activityCandidates(ctx, typedProjectID(typed))
	case registry.KindHours:
		return staticCandidates([]string{"2", "4", "6", "8"}, "hours")
	case registry.KindDescription:
		return staticCandidates([]string{"..."}, "description")
	case registry.KindDate:
		today := p.now().Format("2006-01-02")
		return staticCandidates([]string{today}, arg.Name)
	case registry.KindProjectName:
		return p.projectNameCandidates(ctx, prefix)
	case registry.KindIssueSubject:
		return p.issueSubjectCandidates(ctx, prefix)
	case registry.KindActivityName:
		return p.activityNameCandidates(ctx, prefix)
	default:
		return []Candidate{}
	}
}

// typedProjectID extracts a project ID from an already-typed project
// argument ("Name:12" or "12"), 0 when absent or unparseable.
func typedProjectID(typed map[string]string) int {
	value, ok := typed["project"]
	if !ok {
		return 0
	}
	return parseResourceID(value)
}

// parseResourceID parses the trailing ":id" convention of catalog values.
func parseResourceID(value string) int {
	parts := strings.Split(value, ":")
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return id
}

func (p *Provider) projectCandidates(ctx context.Context, prefix string) []Candidate {
	projects, err := p.source.Projects(ctx)
	if err != nil {
		p.log.Debug().Err(err).Msg("project catalog unavailable")
		return []Candidate{}
	}

	ids := make([]int, len(projects))
	names := make([]string, len(projects))
	for i, project := range projects {
		ids[i] = project.ID
		names[i] = project.Name
	}
	return resourceCandidates(ids, names, prefix)
}

func (p *Provider) issueCandidates(ctx context.Context, prefix string, projectID int) []Candidate {
	issues, err := p.source.Issues(ctx, projectID)
	if err != nil {
		p.log.Debug().Err(err).Msg("issue catalog unavailable")
		return []Candidate{}
	}

	ids := make([]int, len(issues))
	subjects := make([]string, len(issues))
	for i, issue := range issues {
		ids[i] = issue.ID
		subjects[i] = issue.Subject
	}
	return resourceCandidates(ids, subjects, prefix)
}

func (p *Provider) activityCandidates(ctx context.Context, projectID int) []Candidate {
	activities, err := p.source.Activities(ctx, projectID)
	if err != nil {
		p.log.Debug().Err(err).Msg("activity catalog unavailable")
		return []Candidate{}
	}

	candidates := []Candidate{}
	for _, activity := range activities {
		candidates = append(candidates, Candidate{
			Value:       activity.Name + ":" + strconv.Itoa(activity.ID),
			Description: activity.Name,
			Kind:        KindArgument,
		})
	}
	return candidates
}

// resourceCandidates ranks ID-prefix matches first (sorted by ID), then
// fuzzy name matches, deduplicated by value. Provider order is the ranking
// signal: the adapter and the shell both preserve it.
func resourceCandidates(ids []int, names []string, prefix string) []Candidate {
	candidates := []Candidate{}

	if _, err := strconv.Atoi(prefix); err == nil {
		type match struct {
			id   int
			name string
		}
		matches := []match{}
		for i, id := range ids {
			if strings.HasPrefix(strconv.Itoa(id), prefix) {
				matches = append(matches, match{id: id, name: names[i]})
			}
		}
		sort.Slice(matches, func(i, j int) bool { return matches[i].id < matches[j].id })
		for _, m := range matches {
			candidates = append(candidates, resourceCandidate(m.name, m.id))
		}
	}

	if prefix == "" {
		for i, name := range names {
			candidates = append(candidates, resourceCandidate(name, ids[i]))
		}
	} else {
		for _, m := range fuzzy.Find(prefix, names) {
			candidates = append(candidates, resourceCandidate(names[m.Index], ids[m.Index]))
		}
	}

	return lo.UniqBy(candidates, func(c Candidate) string { return c.Value })
}

func resourceCandidate(name string, id int) Candidate {
	return Candidate{
		Value:       name + ":" + strconv.Itoa(id),
		Description: name,
		Kind:        KindArgument,
	}
}

func (p *Provider) projectNameCandidates(ctx context.Context, prefix string) []Candidate {
	projects, err := p.source.Projects(ctx)
	if err != nil {
		p.log.Debug().Err(err).Msg("project catalog unavailable")
		return []Candidate{}
	}

	names := make([]string, len(projects))
	descs := make([]string, len(projects))
	for i, project := range projects {
		names[i] = project.Name
		descs[i] = "#" + strconv.Itoa(project.ID)
	}
	return nameCandidates(names, descs, prefix)
}

func (p *Provider) issueSubjectCandidates(ctx context.Context, prefix string) []Candidate {
	issues, err := p.source.Issues(ctx, 0)
	if err != nil {
		p.log.Debug().Err(err).Msg("issue catalog unavailable")
		return []Candidate{}
	}

	names := make([]string, len(issues))
	descs := make([]string, len(issues))
	for i, issue := range issues {
		names[i] = issue.Subject
		descs[i] = "#" + strconv.Itoa(issue.ID)
	}
	return nameCandidates(names, descs, prefix)
}

func (p *Provider) activityNameCandidates(ctx context.Context, prefix string) []Candidate {
	activities, err := p.source.Activities(ctx, 0)
	if err != nil {
		p.log.Debug().Err(err).Msg("activity catalog unavailable")
		return []Candidate{}
	}

	names := make([]string, len(activities))
	descs := make([]string, len(activities))
	for i, activity := range activities {
		names[i] = activity.Name
		descs[i] = "#" + strconv.Itoa(activity.ID)
	}
	return nameCandidates(names, descs, prefix)
}

func nameCandidates(names, descriptions []string, prefix string) []Candidate {
	candidates := []Candidate{}
	if prefix == "" {
		for i, name := range names {
			candidates = append(candidates, Candidate{Value: name, Description: descriptions[i], Kind: KindArgument})
		}
		return candidates
	}

	for _, m := range fuzzy.Find(prefix, names) {
		candidates = append(candidates, Candidate{Value: names[m.Index], Description: descriptions[m.Index], Kind: KindArgument})
	}
	return candidates
}

func staticCandidates(values []string, description string) []Candidate {
	candidates := make([]Candidate, 0, len(values))
	for _, value := range values {
		candidates = append(candidates, Candidate{
			Value:       value,
			Description: description,
			Kind:        KindArgument,
		})
	}
	return candidates
}
