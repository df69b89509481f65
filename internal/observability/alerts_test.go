package observability

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/digital-guidance/guidance-api/internal/auth"
)

const repoRoot = "../.."

type alertRule struct {
	Alert       string            `yaml:"alert"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for"`
	Labels      map[string]string `yaml:"labels"`
	Annotations map[string]string `yaml:"annotations"`
}

type ruleFile struct {
	Groups []struct {
		Name  string      `yaml:"name"`
		Rules []alertRule `yaml:"rules"`
	} `yaml:"groups"`
}

var (
	metricRef   = regexp.MustCompile(`\bguidance_[a-z_]+`)
	labelMatch  = regexp.MustCompile(`\b(stage|outcome)\s*(=~|!~|!=|=)\s*"([^"]*)"`)
	histoSuffix = regexp.MustCompile(`_(bucket|sum|count)$`)
)

func loadAuthRules(t *testing.T) []alertRule {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(repoRoot, "deploy", "prometheus", "alerts", "auth.yml"))
	require.NoError(t, err)
	var file ruleFile
	require.NoError(t, yaml.Unmarshal(data, &file))
	for _, g := range file.Groups {
		if g.Name == "auth" {
			require.NotEmpty(t, g.Rules)
			return g.Rules
		}
	}
	t.Fatal("auth alert group missing")
	return nil
}

// registeredMetrics returns the metric family names NewMetrics exposes once
// every vector has at least one series.
func registeredMetrics(t *testing.T) map[string]bool {
	t.Helper()
	m := NewMetrics()
	m.ObserveAuth(auth.StageResolve, auth.OutcomeOK)
	m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	families, err := m.registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func knownOutcomes() map[string]bool {
	out := map[string]bool{auth.OutcomeOK: true}
	for k := auth.KindMissingToken; k <= auth.KindForbidden; k++ {
		out[k.Code()] = true
	}
	return out
}

func runbookAnchors(t *testing.T, path string) map[string]bool {
	t.Helper()
	f, err := os.Open(filepath.Join(repoRoot, path))
	require.NoError(t, err)
	defer f.Close()
	anchors := map[string]bool{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "## ") {
			anchor := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "## ")))
			anchors[strings.ReplaceAll(anchor, " ", "-")] = true
		}
	}
	require.NoError(t, scanner.Err())
	return anchors
}

func TestAuthAlertsReferenceExportedMetrics(t *testing.T) {
	metrics := registeredMetrics(t)
	for _, rule := range loadAuthRules(t) {
		refs := metricRef.FindAllString(rule.Expr, -1)
		require.NotEmpty(t, refs, rule.Alert)
		for _, ref := range refs {
			name := ref
			if !metrics[name] {
				name = histoSuffix.ReplaceAllString(ref, "")
			}
			assert.True(t, metrics[name], "%s references unknown metric %s", rule.Alert, ref)
		}
	}
}

func TestAuthAlertsUseRecordedLabelValues(t *testing.T) {
	outcomes := knownOutcomes()
	stages := map[string]bool{auth.StageResolve: true, auth.StageGate: true}
	for _, rule := range loadAuthRules(t) {
		for _, m := range labelMatch.FindAllStringSubmatch(rule.Expr, -1) {
			allowed := outcomes
			if m[1] == "stage" {
				allowed = stages
			}
			for _, value := range strings.Split(m[3], "|") {
				assert.True(t, allowed[value], "%s matches unknown %s %q", rule.Alert, m[1], value)
			}
		}
		if strings.Contains(rule.Expr, "guidance_auth_outcomes_total") {
			assert.Contains(t, rule.Expr, `stage="resolve"`, "%s must not mix resolver and gate decisions", rule.Alert)
		}
	}
}

func TestAuthAlertsLinkExistingRunbookSections(t *testing.T) {
	for _, rule := range loadAuthRules(t) {
		assert.NotEmpty(t, rule.Labels["severity"], rule.Alert)
		assert.NotEmpty(t, rule.For, rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], rule.Alert)

		path, anchor, ok := strings.Cut(rule.Annotations["runbook"], "#")
		require.True(t, ok, "%s runbook needs an anchor", rule.Alert)
		assert.True(t, runbookAnchors(t, path)[anchor], "%s links missing section %s#%s", rule.Alert, path, anchor)
	}
}
