package i18n

// Message keys for lexer diagnostics
const (
	ErrInvalidCharacter   = "lexer.invalid_character"   // args: character
	ErrInvalidNumber      = "lexer.invalid_number"      // args: lexeme
	ErrUnterminatedString = "lexer.unterminated_string" // args: lexeme
)

// Message keys for parser diagnostics
const (
	ErrExpectedToken       = "parser.expected_token"        // args: expected, got
	ErrExpectedAfter       = "parser.expected_after"        // args: expected, after, got
	ErrExpectedExpression  = "parser.expected_expression"   // args: got
	ErrMissingOperand      = "parser.missing_operand"       // args: operator
	ErrUnclosedBlock       = "parser.unclosed_block"
	ErrUnclosedParen       = "parser.unclosed_paren"        // args: context, got
	ErrEmptyIfBody         = "parser.empty_if_body"
	ErrInvalidAssignTarget = "parser.invalid_assign_target" // args: operator
)

// Message keys for symbol collection
const (
	ErrRedeclaredVariable = "symbol.redeclared_variable" // args: name
	ErrRedeclaredFunction = "symbol.redeclared_function" // args: name
)

// Message keys for CLI
const (
	// Usage and help
	MsgRootShort    = "cli.root_short"
	MsgRootLong     = "cli.root_long"
	MsgCmdTokens    = "cli.cmd_tokens"
	MsgCmdParse     = "cli.cmd_parse"
	MsgCmdCheck     = "cli.cmd_check"
	MsgCmdRepl      = "cli.cmd_repl"
	MsgCmdVersion   = "cli.cmd_version"
	MsgFlagConfig   = "cli.flag_config"
	MsgFlagLang     = "cli.flag_lang"
	MsgFlagLogLevel = "cli.flag_log_level"
	MsgFlagVerbose  = "cli.flag_verbose"
	MsgFlagFormat   = "cli.flag_format"
	MsgFlagOutput   = "cli.flag_output"
	MsgFlagWatch    = "cli.flag_watch"
	MsgFlagNoColor  = "cli.flag_no_color"

	// Progress
	MsgUsingConfig   = "cli.using_config"   // args: configPath
	MsgNoConfig      = "cli.no_config"
	MsgChecking      = "cli.checking"       // args: path
	MsgCheckPassed   = "cli.check_passed"   // args: count
	MsgCheckFailed   = "cli.check_failed"   // args: failed, count
	MsgWatching      = "cli.watching"       // args: path
	MsgWrote         = "cli.wrote"          // args: path
	MsgLexFailed     = "cli.lex_failed"     // args: path, count
	MsgParseFailed   = "cli.parse_failed"   // args: path, count
	MsgReplBanner    = "cli.repl_banner"    // args: version
	MsgReplUnknown   = "cli.repl_unknown"   // args: command
	MsgVersionString = "cli.version_string" // args: version

	// Errors
	ErrCannotAccessInput = "cli.cannot_access_input" // args: error
	ErrCannotLoadConfig  = "cli.cannot_load_config"  // args: error
	ErrCannotReadFile    = "cli.cannot_read_file"    // args: path, error
	ErrCannotWriteFile   = "cli.cannot_write_file"   // args: path, error
	ErrNoLumeFiles       = "cli.no_lume_files"       // args: dir
	ErrUnknownFormat     = "cli.unknown_format"      // args: format
	ErrWatchFailed       = "cli.watch_failed"        // args: error
)
