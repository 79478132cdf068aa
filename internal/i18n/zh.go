package i18n

// zhMessages contains Chinese translations
var zhMessages = map[string]string{
	// 词法诊断
	ErrInvalidCharacter:   "非法字符 '%s'",
	ErrInvalidNumber:      "非法数字 '%s'",
	ErrUnterminatedString: "字符串 %s 缺少结束引号",

	// 语法诊断
	ErrExpectedToken:       "期望 %s，实际为 %s",
	ErrExpectedAfter:       "%[2]s 之后期望 %[1]s，实际为 %[3]s",
	ErrExpectedExpression:  "期望表达式，实际为 %s",
	ErrMissingOperand:      "运算符 '%s' 缺少操作数",
	ErrUnclosedBlock:       "代码块未闭合：输入结束前期望 '}'",
	ErrUnclosedParen:       "%s 缺少右括号，实际为 %s",
	ErrEmptyIfBody:         "if 语句体为空",
	ErrInvalidAssignTarget: "'%s' 的赋值目标无效",

	// 符号收集
	ErrRedeclaredVariable: "变量 '%s' 重复声明",
	ErrRedeclaredFunction: "函数 '%s' 重复声明",

	// 命令行
	MsgRootShort:    "lume - lume 脚本语言的词法与语法分析前端",
	MsgRootLong:     "lume 扫描并解析 .lume 源文件并报告诊断信息。\n语法树可以输出为缩进树、Graphviz DOT 或 YAML。",
	MsgCmdTokens:    "输出源文件的 token 流",
	MsgCmdParse:     "解析源文件并输出语法树",
	MsgCmdCheck:     "检查源文件并报告诊断信息",
	MsgCmdRepl:      "启动交互式解析环境",
	MsgCmdVersion:   "显示版本",
	MsgFlagConfig:   "配置文件（默认从输入目录向上查找 lume.toml）",
	MsgFlagLang:     "提示语言（en, zh）",
	MsgFlagLogLevel: "日志级别（debug, info, warn, error）",
	MsgFlagVerbose:  "输出详细信息",
	MsgFlagFormat:   "语法树输出格式（tree, dot, yaml）",
	MsgFlagOutput:   "输出到文件而不是标准输出",
	MsgFlagWatch:    "文件变化时重新检查",
	MsgFlagNoColor:  "关闭彩色输出",

	MsgUsingConfig:   "使用配置文件: %s",
	MsgNoConfig:      "未找到 lume.toml，使用默认配置",
	MsgChecking:      "检查 %s",
	MsgCheckPassed:   "已检查 %d 个文件，没有错误",
	MsgCheckFailed:   "%d/%d 个文件存在错误",
	MsgWatching:      "正在监视 %s（Ctrl+C 停止）",
	MsgWrote:         "已写入 %s",
	MsgLexFailed:     "%s: %d 个词法错误，跳过语法分析",
	MsgParseFailed:   "%s: %d 个语法错误",
	MsgReplBanner:    "lume %s 交互式解析\nCtrl+C 取消输入，Ctrl+D 退出，输入 :quit 退出。",
	MsgReplUnknown:   "未知命令 %s，输入 :quit 退出。",
	MsgVersionString: "lume 版本 %s",

	ErrCannotAccessInput: "无法访问输入: %v",
	ErrCannotLoadConfig:  "无法加载配置: %v",
	ErrCannotReadFile:    "无法读取文件 %s: %v",
	ErrCannotWriteFile:   "无法写入文件 %s: %v",
	ErrNoLumeFiles:       "%s 中没有 .lume 文件",
	ErrUnknownFormat:     "未知输出格式 %q",
	ErrWatchFailed:       "监视失败: %v",
}
