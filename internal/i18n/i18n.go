// Package i18n provides internationalization support for lume diagnostics and CLI output.
package i18n

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/xyproto/env/v2"
)

// Language represents a supported language
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

var (
	currentLang Language
	mu          sync.RWMutex
	once        sync.Once
)

// Init initializes the i18n system by detecting the system language.
// This is called automatically on first use, but can be called explicitly.
func Init() {
	once.Do(func() {
		lang := detectLanguage()
		mu.Lock()
		currentLang = lang
		mu.Unlock()
	})
}

// SetLanguage sets the current language manually.
// Detection runs first so a later T call cannot override the choice.
func SetLanguage(lang Language) {
	Init()
	mu.Lock()
	currentLang = lang
	mu.Unlock()
}

// GetLanguage returns the current language.
func GetLanguage() Language {
	Init()
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// ParseLanguage maps a user supplied code ("zh_CN.UTF-8", "en", ...) to a Language.
// The second result is false when the code names no supported language.
func ParseLanguage(code string) (Language, bool) {
	lang := parseLanguageCode(code)
	return lang, lang != ""
}

// T translates a message key to the current language.
// If the key is not found, returns the key itself.
// Supports format arguments like fmt.Sprintf.
func T(key string, args ...any) string {
	var messages map[string]string
	switch GetLanguage() {
	case LangChinese:
		messages = zhMessages
	default:
		messages = enMessages
	}

	template, ok := messages[key]
	if !ok {
		// Fallback to English
		template, ok = enMessages[key]
		if !ok {
			return key
		}
	}

	if len(args) > 0 {
		return fmt.Sprintf(template, args...)
	}
	return template
}

// detectLanguage detects the system language.
func detectLanguage() Language {
	for _, envVar := range []string{"LUME_LANG", "LANG", "LC_ALL", "LANGUAGE"} {
		if lang := env.Str(envVar); lang != "" {
			if detected := parseLanguageCode(lang); detected != "" {
				return detected
			}
		}
	}

	if runtime.GOOS == "windows" {
		return detectWindowsLanguage()
	}

	return LangEnglish
}

// parseLanguageCode parses a language code string and returns the Language.
func parseLanguageCode(code string) Language {
	code = strings.ToLower(strings.TrimSpace(code))

	// Handle formats like "zh_CN.UTF-8", "zh-CN", "zh", "en_US", etc.
	if strings.HasPrefix(code, "zh") {
		return LangChinese
	}
	if strings.HasPrefix(code, "en") {
		return LangEnglish
	}

	return ""
}

// detectWindowsLanguage detects language on Windows.
func detectWindowsLanguage() Language {
	// Windows only sets LANG in some shells (MSYS, Git Bash); LUME_LANG covers the rest.
	if lang := env.Str("LANG"); lang != "" {
		if detected := parseLanguageCode(lang); detected != "" {
			return detected
		}
	}
	return LangEnglish
}
