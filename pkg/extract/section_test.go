package extract_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/argus-sec/argus/pkg/extract"
)

func TestParseSections(t *testing.T) {
	t.Run("splits four labeled sections", func(t *testing.T) {
		output := "Title: Emotet resurgence\nSummary: Emotet is back with new loaders.\nSpread via phishing.\nIOCs:\n- 1.2.3.4\n- bad.example.com\nMITRE:\n- T1566\n- T1059.001"

		sections := extract.ParseSections(output)

		gt.Value(t, sections.Title).Equal("Emotet resurgence")
		gt.Value(t, sections.Summary).Equal("Emotet is back with new loaders.\nSpread via phishing.")
		gt.Value(t, sections.IOCs).Equal("- 1.2.3.4\n- bad.example.com")
		gt.Value(t, sections.Mitre).Equal("- T1566\n- T1059.001")
	})

	t.Run("labels are case-insensitive and accept dash", func(t *testing.T) {
		output := "title- Foo\nSUMMARY: Bar\niocs:\nMITRE:"

		sections := extract.ParseSections(output)

		gt.Value(t, sections.Title).Equal("Foo")
		gt.Value(t, sections.Summary).Equal("Bar")
		gt.Value(t, sections.IOCs).Equal("")
		gt.Value(t, sections.Mitre).Equal("")
	})

	t.Run("missing labels yield empty sections", func(t *testing.T) {
		sections := extract.ParseSections("Summary: only a summary here")

		gt.Value(t, sections.Title).Equal("")
		gt.Value(t, sections.Summary).Equal("only a summary here")
		gt.Value(t, sections.IOCs).Equal("")
		gt.Value(t, sections.Mitre).Equal("")
	})

	t.Run("text before the first label is ignored", func(t *testing.T) {
		sections := extract.ParseSections("Here is my analysis:\n\nTitle: Foo")
		gt.Value(t, sections.Title).Equal("Foo")
	})

	t.Run("parsing is idempotent", func(t *testing.T) {
		output := "Title: A\nSummary: B\nIOCs:\n- x.example.org\nMITRE:\n- T1105"
		first := extract.ParseSections(output)
		second := extract.ParseSections(output)
		gt.Value(t, first).Equal(second)
	})
}

func TestCleanListItems(t *testing.T) {
	t.Run("strips dashes and drops empties", func(t *testing.T) {
		items := extract.CleanListItems("- one\n\n  -  two\nthree\n   ", nil)
		gt.Array(t, items).Equal([]string{"one", "two", "three"})
	})

	t.Run("filter is applied", func(t *testing.T) {
		items := extract.CleanListItems("- T1059\n- not a tag\n- t1566.002", extract.IsMitreLine)
		gt.Array(t, items).Equal([]string{"T1059", "t1566.002"})
	})

	t.Run("empty block yields nothing", func(t *testing.T) {
		gt.Array(t, extract.CleanListItems("", nil)).Length(0)
	})
}

func TestScanMitreTags(t *testing.T) {
	t.Run("scans and upper-cases", func(t *testing.T) {
		tags := extract.ScanMitreTags("actor used t1059.001 then T1105, and t1059.001 again")
		gt.Array(t, tags).Equal([]string{"T1059.001", "T1105"})
	})

	t.Run("rejects malformed identifiers", func(t *testing.T) {
		gt.Array(t, extract.ScanMitreTags("T105 T10599")).Length(0)
	})

	t.Run("empty input", func(t *testing.T) {
		gt.Array(t, extract.ScanMitreTags("")).Length(0)
	})
}
