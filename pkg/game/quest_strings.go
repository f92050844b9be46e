package game

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/decker502/cartographer/pkg/embedded"
)

// 文本键
const (
	StrTitle          = "TITLE"
	StrSubtitle       = "SUBTITLE"
	StrTitleIntro     = "TITLE_INTRO"
	StrNavLeg0        = "NAV_LEG_0"
	StrNavLeg1        = "NAV_LEG_1"
	StrNavLeg2        = "NAV_LEG_2"
	StrNavHint        = "NAV_HINT"
	StrNavFill        = "NAV_FILL"
	StrNavArrive      = "NAV_ARRIVE"
	StrNavClose       = "NAV_CLOSE"
	StrNavFar         = "NAV_FAR"
	StrChordsIntro    = "CHORDS_INTRO"
	StrChordsWrong    = "CHORDS_WRONG"
	StrChordsDone     = "CHORDS_DONE"
	StrGridIntro      = "GRID_INTRO"
	StrGridDone       = "GRID_DONE"
	StrRouteIntro     = "ROUTE_INTRO"
	StrRouteWrongCost = "ROUTE_WRONG_COST"
	StrRouteAtDest    = "ROUTE_AT_DESTINATION"
	StrRouteDone      = "ROUTE_DONE"
	StrDanceIntro     = "DANCE_INTRO"
	StrDanceWatch     = "DANCE_WATCH"
	StrDanceYourTurn  = "DANCE_YOUR_TURN"
	StrDanceWrong     = "DANCE_WRONG"
	StrDanceDone      = "DANCE_DONE"
	StrFinale         = "FINALE"
	StrFinaleBirthday = "FINALE_BIRTHDAY"
)

// defaultQuestStrings 内置文本，外部文件缺少的键回退到这里
var defaultQuestStrings = map[string]string{
	StrTitle:          "The Cartographer of Winds",
	StrSubtitle:       "A 40th Birthday Micro-Quest",
	StrTitleIntro:     "Five chapters await. Each one a fragment of a life well-sailed.",
	StrNavLeg0:        "You depart Montréal with an old hand-drawn map in your pocket. The wind doesn't care about your itinerary.",
	StrNavLeg1:        "The Atlantic opens wide. Nothing but water and sky. Trim your sail and trust the wind.",
	StrNavLeg2:        "A green smudge on the horizon: Brazil. One perfect trim and you're there.",
	StrNavHint:        "Drag the sail tip to catch the wind",
	StrNavFill:        "✓ The sail fills, onward!",
	StrNavArrive:      "⚓ Perfect! Brazil in sight!",
	StrNavClose:       "Getting closer… adjust a little more.",
	StrNavFar:         "The sail luffs. Try a different angle.",
	StrChordsIntro:    "Washed up on a Brazilian beach, you find a guitar. Its inscription reads: \"Play the chords to spell what you are...\"",
	StrChordsWrong:    "Wrong. Next chord is %s",
	StrChordsDone:     "The music echoes across the sand…",
	StrGridIntro:      "Numbers are shapes. 40 is a pattern. Find it.",
	StrGridDone:       "40 — the shape appears in light.",
	StrRouteIntro:     "Chart a course from %s to %s. The log must read exactly %d.",
	StrRouteWrongCost: "You reached %s, but the log reads %d, not %d. Undo or reset.",
	StrRouteAtDest:    "You are already at %s. Undo or reset to try another course.",
	StrRouteDone:      "%d exactly. The map is whole.",
	StrDanceIntro:     "On the dance floor in Rio, the steps come alive. Watch the sequence, then mirror it.",
	StrDanceWatch:     "Watch carefully…",
	StrDanceYourTurn:  "Your turn. Tap the moves in order!",
	StrDanceWrong:     "Not quite. Watch again!",
	StrDanceDone:      "Perfect rhythm! You feel the beat.",
	StrFinale:         "Winds mastered. Forró fo sho. Now that's a future worth mapping.",
	StrFinaleBirthday: "Happy 40th Birthday!",
}

// QuestStrings 文本字符串表
//
// 文件格式：
//
//	[KEY]
//	文本内容
type QuestStrings struct {
	strings map[string]string
}

// DefaultQuestStrings 仅包含内置文本的字符串表
func DefaultQuestStrings() *QuestStrings {
	qs := &QuestStrings{strings: make(map[string]string, len(defaultQuestStrings))}
	for k, v := range defaultQuestStrings {
		qs.strings[k] = v
	}
	return qs
}

// LoadQuestStrings 从嵌入资源加载文本文件，未覆盖的键使用内置文本
func LoadQuestStrings(filePath string) (*QuestStrings, error) {
	file, err := embedded.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open strings file %s: %w", filePath, err)
	}
	defer file.Close()

	qs, err := ParseQuestStrings(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read strings file %s: %w", filePath, err)
	}
	return qs, nil
}

// ParseQuestStrings 解析 [KEY] / 文本 交替的内容
func ParseQuestStrings(r io.Reader) (*QuestStrings, error) {
	qs := DefaultQuestStrings()

	scanner := bufio.NewScanner(r)
	var currentKey string
	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentKey = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		if currentKey != "" {
			qs.strings[currentKey] = line
			currentKey = ""
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return qs, nil
}

// GetString 根据键获取文本，键不存在时返回 "[key]"
func (qs *QuestStrings) GetString(key string) string {
	if text, ok := qs.strings[key]; ok {
		return text
	}
	return "[" + key + "]"
}

// Format 获取文本并按 fmt 规则填充参数
func (qs *QuestStrings) Format(key string, args ...any) string {
	return fmt.Sprintf(qs.GetString(key), args...)
}

// NavigationNarrative 航海章节每段航程的旁白
func (qs *QuestStrings) NavigationNarrative(leg int) string {
	switch {
	case leg <= 0:
		return qs.GetString(StrNavLeg0)
	case leg == 1:
		return qs.GetString(StrNavLeg1)
	default:
		return qs.GetString(StrNavLeg2)
	}
}
