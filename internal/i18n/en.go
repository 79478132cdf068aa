package i18n

// enMessages contains English translations
var enMessages = map[string]string{
	// Lexer diagnostics
	ErrInvalidCharacter:   "invalid character '%s'",
	ErrInvalidNumber:      "invalid number '%s'",
	ErrUnterminatedString: "no closing quote for string %s",

	// Parser diagnostics
	ErrExpectedToken:       "expected %s, got %s",
	ErrExpectedAfter:       "expected %s after %s, got %s",
	ErrExpectedExpression:  "expected expression, got %s",
	ErrMissingOperand:      "missing operand of '%s'",
	ErrUnclosedBlock:       "unclosed block: expected '}' before end of input",
	ErrUnclosedParen:       "no closing parenthesis for %s, got %s",
	ErrEmptyIfBody:         "empty body in if statement",
	ErrInvalidAssignTarget: "invalid assignment target for '%s'",

	// Symbol collection
	ErrRedeclaredVariable: "redeclaration of variable '%s'",
	ErrRedeclaredFunction: "redeclaration of function '%s'",

	// CLI usage
	MsgRootShort:    "lume - lexer and parser front end for the lume scripting language",
	MsgRootLong:     "lume scans and parses .lume source files and reports diagnostics.\nThe resulting syntax tree can be printed as an indented tree, Graphviz DOT or YAML.",
	MsgCmdTokens:    "Print the token stream of a source file",
	MsgCmdParse:     "Parse source files and print the syntax tree",
	MsgCmdCheck:     "Check source files and report diagnostics",
	MsgCmdRepl:      "Start an interactive parse loop",
	MsgCmdVersion:   "Print the version",
	MsgFlagConfig:   "config file (default: lume.toml found from the input directory upwards)",
	MsgFlagLang:     "message language (en, zh)",
	MsgFlagLogLevel: "log level (debug, info, warn, error)",
	MsgFlagVerbose:  "verbose output",
	MsgFlagFormat:   "tree output format (tree, dot, yaml)",
	MsgFlagOutput:   "write output to this file instead of stdout",
	MsgFlagWatch:    "re-check when files change",
	MsgFlagNoColor:  "disable colored output",

	// CLI progress
	MsgUsingConfig:   "Using config: %s",
	MsgNoConfig:      "No lume.toml found, using defaults",
	MsgChecking:      "Checking %s",
	MsgCheckPassed:   "%d file(s) checked, no errors",
	MsgCheckFailed:   "%d of %d file(s) have errors",
	MsgWatching:      "Watching %s for changes (Ctrl+C to stop)",
	MsgWrote:         "Wrote %s",
	MsgLexFailed:     "%s: %d lexer error(s), parsing skipped",
	MsgParseFailed:   "%s: %d parse error(s)",
	MsgReplBanner:    "lume %s parse REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.",
	MsgReplUnknown:   "unknown command %s. Type :quit to exit.",
	MsgVersionString: "lume version %s",

	// CLI errors
	ErrCannotAccessInput: "cannot access input: %v",
	ErrCannotLoadConfig:  "cannot load config: %v",
	ErrCannotReadFile:    "cannot read file %s: %v",
	ErrCannotWriteFile:   "cannot write file %s: %v",
	ErrNoLumeFiles:       "no .lume files found in %s",
	ErrUnknownFormat:     "unknown output format %q",
	ErrWatchFailed:       "watch failed: %v",
}
