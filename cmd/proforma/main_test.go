package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/proforma"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sitesJSON = `[
  {"site_id": "a", "rents": {"residential": 30, "office": 15, "retail": 12, "industrial": 12},
   "land_cost": 100000, "parcel_size": 1000, "max_far": 2, "max_height": 80},
  {"site_id": "b", "rents": {"residential": 20, "office": 15, "retail": 12, "industrial": 12},
   "land_cost": 100000, "parcel_size": 1000, "max_far": 2, "max_height": 80}
]`

func TestDefaultsRoundTrip(t *testing.T) {
	out, err := execute(t, "defaults")
	require.NoError(t, err)

	cfg, err := proforma.LoadConfig(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, proforma.DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	good := writeFile(t, "good.yaml", "cap_rate: 0.05\n")
	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "Result: VALID")

	bad := writeFile(t, "bad.yaml", "cap_rate: -1\n")
	_, err = execute(t, "validate", bad)
	var cfgErr *proforma.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestReference(t *testing.T) {
	out, err := execute(t, "reference", "--form", "retail", "--parking", "deck")
	require.NoError(t, err)
	assert.Contains(t, out, "Reference: retail / deck parking")
	// 24 fars plus title, blank line and header
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 27)

	out, err = execute(t, "reference", "--form", "residential", "--parking", "deck", "--break-even", "--json")
	require.NoError(t, err)
	var resp struct {
		Costs []*float64 `json:"costs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Costs, 24)
	assert.InDelta(t, 187, *resp.Costs[7], 1e-9)

	_, err = execute(t, "reference", "--form", "hotel")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	path := writeFile(t, "sites.json", sitesJSON)

	out, err := execute(t, "lookup", path, "--form", "residential")
	require.NoError(t, err)

	var resp struct {
		Forms map[string][]domain.FeasibilityResult `json:"forms"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Forms["residential"], 1)
	assert.Equal(t, "a", resp.Forms["residential"][0].SiteID)
}

func TestLookup_InvalidSites(t *testing.T) {
	path := writeFile(t, "sites.json", `[{"rents": {"residential": 1}}]`)
	_, err := execute(t, "lookup", path)
	assert.Error(t, err)

	_, err = execute(t, "lookup", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestImport_SQLite(t *testing.T) {
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "sites.db"))
	path := writeFile(t, "sites.json", sitesJSON)

	out, err := execute(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 sites into sqlite")
}
