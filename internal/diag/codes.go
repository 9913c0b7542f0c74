package diag

import (
	"fmt"
	"strings"
)

type Code uint16

const (
	// Неизвестный код
	UnknownCode Code = 0

	// Правила для script
	ScrArgumentCount  Code = 1001
	ScrFunctionLength Code = 1002
	ScrBooleanNaming  Code = 1003
	ScrNestingDepth   Code = 1004
	ScrMagicNumber    Code = 1005
	ScrSafeAccess     Code = 1006

	// Правила для template
	TplAttributeOrder  Code = 2001
	TplAttributeNaming Code = 2002
)

type codeInfo struct {
	name    string
	title   string
	fixable bool
}

var codeTable = map[Code]codeInfo{
	UnknownCode:        {name: "unknown", title: "Unknown rule"},
	ScrArgumentCount:   {name: "argument-count", title: "Too many function parameters"},
	ScrFunctionLength:  {name: "function-length", title: "Function body is too long"},
	ScrBooleanNaming:   {name: "boolean-naming", title: "Boolean name lacks a semantic prefix", fixable: true},
	ScrNestingDepth:    {name: "nesting-depth", title: "Blocks are nested too deeply"},
	ScrMagicNumber:     {name: "magic-number", title: "Unnamed numeric constant in expression"},
	ScrSafeAccess:      {name: "safe-access", title: "Unguarded chained property access"},
	TplAttributeOrder:  {name: "attribute-order", title: "Template attributes are out of order", fixable: true},
	TplAttributeNaming: {name: "attribute-naming", title: "Attribute name is not kebab-case", fixable: true},
}

// AllCodes lists the rule codes in catalogue order.
func AllCodes() []Code {
	return []Code{
		ScrArgumentCount,
		ScrFunctionLength,
		ScrBooleanNaming,
		ScrNestingDepth,
		ScrMagicNumber,
		ScrSafeAccess,
		TplAttributeOrder,
		TplAttributeNaming,
	}
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic > 1000 && ic < 2000:
		return fmt.Sprintf("SCR%03d", ic-1000)
	case ic > 2000 && ic < 3000:
		return fmt.Sprintf("TPL%03d", ic-2000)
	}
	return "E000"
}

// Name is the kebab-case rule name accepted by configuration next to the ID.
func (c Code) Name() string {
	info, ok := codeTable[c]
	if !ok {
		return codeTable[UnknownCode].name
	}
	return info.name
}

func (c Code) Title() string {
	info, ok := codeTable[c]
	if !ok {
		return codeTable[UnknownCode].title
	}
	return info.title
}

// Fixable reports whether the rule attaches fix suggestions.
func (c Code) Fixable() bool {
	return codeTable[c].fixable
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode resolves a rule ID ("SCR003") or rule name ("boolean-naming").
func ParseCode(s string) (Code, bool) {
	s = strings.TrimSpace(s)
	for _, c := range AllCodes() {
		if strings.EqualFold(s, c.ID()) || strings.EqualFold(s, c.Name()) {
			return c, true
		}
	}
	return UnknownCode, false
}
