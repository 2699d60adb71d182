package attribute

import (
	"fmt"
	"regexp"
	"strings"
)

// Action codes. Downstream statistics key on these exact strings, so the
// table below is fixed: extending it is additive only.
const (
	ActionMade1       = "made1"
	ActionMiss1       = "miss1"
	ActionMade2       = "made2"
	ActionMiss2       = "miss2"
	ActionMade3       = "made3"
	ActionMiss3       = "miss3"
	ActionRebDef      = "reb_def"
	ActionRebOff      = "reb_off"
	ActionAssist      = "assist"
	ActionSteal       = "steal"
	ActionTurnover    = "turnover"
	ActionBlock       = "block"
	ActionBlockRv     = "block_rv"
	ActionDunk        = "dunk"
	ActionFoul        = "foul"
	ActionFoulRv      = "foul_rv"
	ActionSubIn       = "sub_in"
	ActionSubOut      = "sub_out"
	ActionTimeout     = "timeout"
	ActionTipOff      = "tip_off"
	ActionPeriodStart = "period_start"
	ActionPeriodEnd   = "period_end"
	ActionGameStart   = "game_start"
	ActionGameEnd     = "game_end"
)

type actionSpec struct {
	code     string
	hasActor bool
}

// actionTaxonomy maps the source-language action labels to canonical codes.
// Label spellings follow the league's live feed; lookups are case-insensitive
// on the base label after detail suffixes are stripped.
var actionTaxonomy = map[string]actionSpec{
	"canasta de 1":          {ActionMade1, true},
	"tiro libre anotado":    {ActionMade1, true},
	"tiro libre fallado":    {ActionMiss1, true},
	"canasta de 2":          {ActionMade2, true},
	"tiro de 2 fallado":     {ActionMiss2, true},
	"canasta de 3":          {ActionMade3, true},
	"tiro de 3 fallado":     {ActionMiss3, true},
	"rebote defensivo":      {ActionRebDef, true},
	"rebote ofensivo":       {ActionRebOff, true},
	"asistencia":            {ActionAssist, true},
	"recuperación":          {ActionSteal, true},
	"pérdida":               {ActionTurnover, true},
	"tapón":                 {ActionBlock, true},
	"tapón recibido":        {ActionBlockRv, true},
	"mate":                  {ActionDunk, true},
	"falta personal":        {ActionFoul, true},
	"falta recibida":        {ActionFoulRv, true},
	"entra a pista":         {ActionSubIn, true},
	"se retira":             {ActionSubOut, true},
	"tiempo muerto":         {ActionTimeout, false},
	"salto inicial":         {ActionTipOff, false},
	"inicio de periodo":     {ActionPeriodStart, false},
	"fin de periodo":        {ActionPeriodEnd, false},
	"inicio del partido":    {ActionGameStart, false},
	"fin del partido":       {ActionGameEnd, false},
}

// actionDetails normalizes the parenthesized shot sub-types.
var actionDetails = map[string]string{
	"bandeja":    "layup",
	"gancho":     "hook",
	"paso atrás": "step-back",
	"palmeo":     "tip-in",
	"mate":       "dunk",
	"técnica":    "technical",
	"antideportiva": "unsportsmanlike",
	"descalificante": "disqualifying",
}

// freeThrowCounter matches trailing free-throw counters like "1/2" or "3/3".
var freeThrowCounter = regexp.MustCompile(`\s(\d/\d)\s*$`)

// UnknownActionError reports a play-by-play label missing from the taxonomy.
// Fatal for the game batch: guessing a code would corrupt downstream stats.
type UnknownActionError struct {
	Raw string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action label %q", e.Raw)
}

// ParseAction splits a raw action text into its canonical code, optional
// detail tag, and whether the action carries a player context.
//
// "Canasta de 2 (Bandeja)" -> ("made2", "layup", true)
// "Tiro libre anotado 2/2" -> ("made1", "2/2", true)
// "Tiempo muerto"          -> ("timeout", "", false)
func ParseAction(raw string) (code, detail string, hasActor bool, err error) {
	text := strings.TrimSpace(raw)

	// Parenthesized sub-type, e.g. "(Bandeja)".
	if open := strings.LastIndex(text, "("); open >= 0 && strings.HasSuffix(text, ")") {
		sub := strings.TrimSpace(text[open+1 : len(text)-1])
		if norm, ok := actionDetails[strings.ToLower(sub)]; ok {
			detail = norm
		} else {
			detail = strings.ToLower(sub)
		}
		text = strings.TrimSpace(text[:open])
	}

	// Trailing free-throw counter, e.g. "2/2". Overrides a sub-type: the
	// two never co-occur in the source.
	if m := freeThrowCounter.FindStringSubmatch(text); m != nil {
		detail = m[1]
		text = strings.TrimSpace(strings.TrimSuffix(text, m[0]))
	}

	spec, ok := actionTaxonomy[strings.ToLower(text)]
	if !ok {
		return "", "", false, &UnknownActionError{Raw: raw}
	}
	return spec.code, detail, spec.hasActor, nil
}
