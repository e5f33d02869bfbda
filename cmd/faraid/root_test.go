package main

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faraid-engine/internal/model"
)

// run executes the CLI and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FARAID_CONFIG", "")
	t.Setenv("PRICE_FEED_URL", "")
	t.Setenv("FARAID_RADD_POLICY", "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseHeirs(t *testing.T) {
	heirs, err := parseHeirs([]string{"Husband", "daughter=2", "full-brother = 3"})
	require.NoError(t, err)
	assert.Equal(t, []model.HeirInput{
		{ID: "husband-1", Relation: "husband", Count: 1},
		{ID: "daughter-2", Relation: "daughter", Count: 2},
		{ID: "full_brother-3", Relation: "full_brother", Count: 3},
	}, heirs)

	_, err = parseHeirs([]string{"son=two"})
	assert.Error(t, err)
}

func TestCalculateTable(t *testing.T) {
	out, err := run(t, "calculate", "--heir", "husband", "--heir", "daughter=2")
	require.NoError(t, err)
	assert.Contains(t, out, "HEIR")
	assert.Contains(t, out, "1/4")
	assert.Contains(t, out, "3/4")
	assert.Contains(t, out, "3/8")
	assert.Contains(t, out, "75.00")
}

func TestCalculateJSON(t *testing.T) {
	out, err := run(t, "calculate", "--json", "--heir", "son", "--heir", "daughter")
	require.NoError(t, err)

	var resp model.InheritanceResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	require.Len(t, resp.CalculationResult.Results, 2)
	assert.Equal(t, "2/3", resp.CalculationResult.Results[0].Share)
}

func TestCalculateFailure(t *testing.T) {
	out, err := run(t, "calculate", "--heir", "wife=5")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "COUNT_EXCEEDS_CAP")
	assert.NotContains(t, out, "Error:")
}

func TestCommandErrorsAreNotPrintedTwice(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"calculate", "--heir", "son=two"})

	require.Error(t, cmd.Execute())
	assert.Empty(t, errOut.String())
}

func TestCalculateRaddPolicyFlag(t *testing.T) {
	_, err := run(t, "calculate", "--heir", "husband", "--heir", "mother", "--radd-policy", "fail-closed")
	require.ErrorIs(t, err, errFailed)

	out, err := run(t, "calculate", "--heir", "husband", "--heir", "mother")
	require.NoError(t, err)
	assert.Contains(t, out, "RADD_APPLIED")

	_, err = run(t, "calculate", "--heir", "son", "--radd-policy", "share-with-everyone")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", "--heir", "son=2", "--heir", "mother")
	require.NoError(t, err)
	assert.Contains(t, out, "heirs are valid")

	out, err = run(t, "validate", "--heir", "cousin")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "UNKNOWN_RELATION")
}

func TestZakat(t *testing.T) {
	out, err := run(t, "zakat", "--json",
		"--cash", "2000", "--silver-grams", "100", "--liabilities", "500",
		"--gold-price", "70", "--silver-price", "1", "--currency", "USD")
	require.NoError(t, err)

	var resp model.ZakatResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.CalculationResult.Assessment)
	assert.Equal(t, "1600.00", resp.CalculationResult.Assessment.NetWealth)
	assert.Equal(t, "40.00", resp.CalculationResult.Assessment.ZakatDue)
}

func TestZakatJSONStaysParseableWhenFeedIsDown(t *testing.T) {
	t.Setenv("FARAID_CONFIG", "")
	t.Setenv("FARAID_RADD_POLICY", "")
	t.Setenv("DEFAULT_CURRENCY", "")
	t.Setenv("SILVER_PRICE_PER_GRAM", "")
	t.Setenv("PRICE_FEED_URL", "http://127.0.0.1:1")
	t.Setenv("PRICE_FEED_TIMEOUT", "500ms")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"zakat", "--json", "--cash", "1000"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, errOut.String(), "price feed failed, using fallback")

	dec := json.NewDecoder(strings.NewReader(out.String()))
	var resp model.ZakatResponse
	require.NoError(t, dec.Decode(&resp))
	assert.False(t, dec.More(), "stdout holds more than one JSON document")
	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	require.NotNil(t, resp.CalculationResult.Assessment)
	assert.Equal(t, "0.90", resp.CalculationResult.Assessment.SilverPerGram)
}

func TestZakatBelowNisab(t *testing.T) {
	out, err := run(t, "zakat", "--cash", "100", "--gold-price", "70", "--silver-price", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "BELOW_NISAB")
	assert.Contains(t, out, "Zakat due")
}

func TestZakatPriceFlagsTogether(t *testing.T) {
	_, err := run(t, "zakat", "--cash", "100", "--gold-price", "70")
	assert.Error(t, err)
}

func TestDecimalValue(t *testing.T) {
	var d decimal.Decimal
	v := newDecimalValue(&d)
	require.NoError(t, v.Set(" 12.50 "))
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "12.5", v.String())
	assert.Error(t, v.Set("twelve"))
}
