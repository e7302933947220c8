package formatter

// AssertOnStringLiteralFormatter always renders the classification note so
// the reader can see whether the literal was empty, non-empty, or of
// statically unknown content.
type AssertOnStringLiteralFormatter struct{}

func (f *AssertOnStringLiteralFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn}}` +
		`{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding}}` +
		`{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}` +
		`{{note .Note}}` + "\n"
}
