package richtext

import (
	"regexp"
	"sort"
	"strings"
)

// NBSP replaces literal spaces inside inline-math spans so the span never
// breaks across lines during layout.
const NBSP = "\u00A0"

// Internal placeholders use Unicode Private Use Area characters, guaranteed
// not to collide with document text. Upright markers bracket resolved
// function names; the escape runes protect literal characters (code spans,
// math asterisks) from the emphasis and script scanners.
const (
	uprightStart = '\uE000'
	uprightEnd   = '\uE001'

	escStar       = '\uE002'
	escBackslash  = '\uE003'
	escDollar     = '\uE004'
	escUnderscore = '\uE005'
	escCaret      = '\uE006'
	escOpenBrace  = '\uE007'
	escCloseBrace = '\uE008'
)

// glyphs maps symbolic commands to Unicode glyphs.
var glyphs = map[string]string{
	// Greek lowercase
	`\alpha`: "α", `\beta`: "β", `\gamma`: "γ",
	`\delta`: "δ", `\epsilon`: "ε", `\varepsilon`: "ε",
	`\zeta`: "ζ", `\eta`: "η", `\theta`: "θ",
	`\iota`: "ι", `\kappa`: "κ", `\lambda`: "λ",
	`\mu`: "μ", `\nu`: "ν", `\xi`: "ξ",
	`\pi`: "π", `\rho`: "ρ", `\sigma`: "σ",
	`\tau`: "τ", `\upsilon`: "υ", `\phi`: "φ",
	`\varphi`: "φ", `\chi`: "χ", `\psi`: "ψ",
	`\omega`: "ω",
	// Greek uppercase
	`\Gamma`: "Γ", `\Delta`: "Δ", `\Theta`: "Θ",
	`\Lambda`: "Λ", `\Xi`: "Ξ", `\Pi`: "Π",
	`\Sigma`: "Σ", `\Phi`: "Φ", `\Psi`: "Ψ",
	`\Omega`: "Ω",
	// Operators and relations
	`\cdot`: "·", `\times`: "×", `\div`: "÷",
	`\pm`: "±", `\mp`: "∓",
	`\leq`: "≤", `\geq`: "≥", `\neq`: "≠",
	`\approx`: "≈", `\equiv`: "≡", `\sim`: "∼",
	`\propto`: "∝",
	`\in`: "∈", `\notin`: "∉", `\subset`: "⊂",
	`\supset`: "⊃", `\cup`: "∪", `\cap`: "∩",
	`\emptyset`: "∅",
	`\infty`:    "∞",
	`\partial`:  "∂",
	`\nabla`:    "∇",
	`\forall`:   "∀", `\exists`: "∃",
	`\rightarrow`: "→", `\leftarrow`: "←",
	`\Rightarrow`: "⇒", `\Leftarrow`: "⇐",
	`\leftrightarrow`: "↔", `\Leftrightarrow`: "⇔",
	`\mapsto`: "↦",
	// Integrals and sums
	`\int`: "∫", `\iint`: "∬", `\iiint`: "∭",
	`\oint`: "∮",
	`\sum`:  "∑", `\prod`: "∏",
	// Misc
	`\ldots`: "…", `\dots`: "…", `\cdots`: "⋯",
	`\prime`: "′",
	`\neg`:   "¬", `\wedge`: "∧", `\vee`: "∨",
	`\oplus`: "⊕", `\otimes`: "⊗",
	`\dagger`: "†", `\ddagger`: "‡",
	`\ell`:    "ℓ",
	`\hbar`:   "ℏ",
	`\quad`:   " ",
	`\qquad`:  "  ",
}

// doubleStruck maps uppercase letters to blackboard-bold glyphs for the
// mathbb macro.
var doubleStruck = map[string]string{
	"A": "\U0001D538", "B": "\U0001D539", "C": "ℂ",
	"D": "\U0001D53B", "E": "\U0001D53C", "F": "\U0001D53D",
	"G": "\U0001D53E", "H": "ℍ", "I": "\U0001D540",
	"J": "\U0001D541", "K": "\U0001D542", "L": "\U0001D543",
	"M": "\U0001D544", "N": "ℕ", "O": "\U0001D546",
	"P": "ℙ", "Q": "ℚ", "R": "ℝ",
	"S": "\U0001D54A", "T": "\U0001D54B", "U": "\U0001D54C",
	"V": "\U0001D54D", "W": "\U0001D54E", "X": "\U0001D54F",
	"Y": "\U0001D550", "Z": "ℤ",
}

// Precompiled patterns. The function alternation lists longer names first;
// Go regexp alternation is leftmost-first, so sinh must precede sin.
var (
	doubledBackslash = regexp.MustCompile(`\\\\([a-zA-Z])`)
	textMacro        = regexp.MustCompile(`\\?\btext\{([^{}]*)\}`)
	mathbbMacro      = regexp.MustCompile(`\\?\bmathbb\{([A-Z])\}`)
	fracMacro        = regexp.MustCompile(`\\?\bfrac\{((?:[^{}]|\{[^{}]*\})*)\}\{((?:[^{}]|\{[^{}]*\})*)\}`)

	functionPattern = regexp.MustCompile(
		`\\(arcsin|arccos|arctan|sinh|cosh|tanh|sin|cos|tan|sec|csc|cot|log|ln|exp|lim|max|min|sup|inf|det|dim|ker|arg|deg|gcd|hom)([^a-zA-Z]|$)`)

	scriptPattern = regexp.MustCompile(`([_^])\{([^{}]*)\}|([_^])([^\s{}_^])`)
)

// glyphReplacer substitutes command names with glyphs, longest name first
// so \leq never partially matches inside \leqslant-like unknowns.
var glyphReplacer = func() *strings.Replacer {
	names := make([]string, 0, len(glyphs))
	for name := range glyphs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, name, glyphs[name])
	}
	return strings.NewReplacer(pairs...)
}()

var (
	escapeLiterals = strings.NewReplacer(
		"*", string(escStar),
		`\`, string(escBackslash),
		"$", string(escDollar),
		"_", string(escUnderscore),
		"^", string(escCaret),
		"{", string(escOpenBrace),
		"}", string(escCloseBrace),
	)
	unescapeLiterals = strings.NewReplacer(
		string(escStar), "*",
		string(escBackslash), `\`,
		string(escDollar), "$",
		string(escUnderscore), "_",
		string(escCaret), "^",
		string(escOpenBrace), "{",
		string(escCloseBrace), "}",
	)
)

// Resolve converts markup text into style-annotated spans. It is a total
// function: unknown commands and unbalanced delimiters pass through as
// literal text. Command and script resolution run before emphasis scanning
// so math content containing * or _ is never misread as emphasis.
func Resolve(text string) RichText {
	if text == "" {
		return nil
	}

	text = doubledBackslash.ReplaceAllString(text, `\$1`)
	text = unwrapCodeSpans(text)
	text = resolveInlineMath(text)
	text = resolveCommands(text)

	var out RichText
	for _, seg := range splitScripts(text) {
		if seg.script != ScriptNone {
			out = append(out, finalize(seg.text, None, seg.script)...)
			continue
		}
		out = append(out, scanEmphasis(seg.text)...)
	}
	return out
}

// resolveCommands applies the command table and macros to s.
func resolveCommands(s string) string {
	if !strings.Contains(s, `\`) && !strings.Contains(s, "frac{") &&
		!strings.Contains(s, "mathbb{") && !strings.Contains(s, "text{") {
		return s
	}
	s = doubledBackslash.ReplaceAllString(s, `\$1`)
	s = textMacro.ReplaceAllString(s, "$1")
	s = mathbbMacro.ReplaceAllStringFunc(s, func(m string) string {
		letter := m[len(m)-2 : len(m)-1]
		if g, ok := doubleStruck[letter]; ok {
			return g
		}
		return letter
	})
	s = fracMacro.ReplaceAllString(s, "($1)/($2)")
	s = functionPattern.ReplaceAllString(s,
		string(uprightStart)+"$1"+string(uprightEnd)+"$2")
	s = glyphReplacer.Replace(s)
	return s
}

// unwrapCodeSpans removes single-backtick delimiters and protects the
// enclosed text from all further resolution. An unmatched backtick stays
// literal.
func unwrapCodeSpans(s string) string {
	if !strings.Contains(s, "`") {
		return s
	}
	var b strings.Builder
	for {
		open := strings.IndexByte(s, '`')
		if open < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.IndexByte(s[open+1:], '`')
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:open])
		b.WriteString(escapeLiterals.Replace(s[open+1 : open+1+end]))
		s = s[open+end+2:]
	}
}

// resolveInlineMath processes $...$ spans: the interior is command-resolved,
// its spaces become non-breaking, and its asterisks are protected from the
// emphasis scanner. $$ pairs are left untouched for the display-equation
// path; a $ with no closing partner stays literal.
func resolveInlineMath(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '$' {
			b.WriteString("$$")
			i += 2
			continue
		}
		end := -1
		for j := i + 1; j < len(s); j++ {
			if s[j] != '$' {
				continue
			}
			if j+1 < len(s) && s[j+1] == '$' {
				j++
				continue
			}
			end = j
			break
		}
		if end < 0 || end == i+1 {
			b.WriteByte('$')
			i++
			continue
		}
		inner := resolveCommands(s[i+1 : end])
		inner = strings.ReplaceAll(inner, " ", NBSP)
		inner = strings.ReplaceAll(inner, "*", string(escStar))
		b.WriteString(inner)
		i = end + 1
	}
	return b.String()
}

// segment is a run of text with an optional script annotation.
type segment struct {
	text   string
	script Script
}

// splitScripts cuts s at _x, _{multi}, ^x and ^{multi} markers, attaching
// the script annotation to the marked content.
func splitScripts(s string) []segment {
	matches := scriptPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return []segment{{text: s}}
	}
	var segs []segment
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			segs = append(segs, segment{text: s[pos:m[0]]})
		}
		var marker, content string
		if m[2] >= 0 { // braced form
			marker = s[m[2]:m[3]]
			content = s[m[4]:m[5]]
		} else { // bare single character
			marker = s[m[6]:m[7]]
			content = s[m[8]:m[9]]
		}
		script := Superscript
		if marker == "_" {
			script = Subscript
		}
		segs = append(segs, segment{text: content, script: script})
		pos = m[1]
	}
	if pos < len(s) {
		segs = append(segs, segment{text: s[pos:]})
	}
	return segs
}

// scanEmphasis converts *italic*, **bold** and ***bold italic*** delimiter
// pairs into emphasis spans. Scanning is greedy outward-in: at a run of
// asterisks the longest closable delimiter wins. A delimiter immediately
// followed by a space never opens emphasis.
func scanEmphasis(s string) RichText {
	var out RichText
	var lit strings.Builder
	flushLit := func() {
		if lit.Len() > 0 {
			out = append(out, finalize(lit.String(), None, ScriptNone)...)
			lit.Reset()
		}
	}

	i := 0
	for i < len(s) {
		if s[i] != '*' {
			lit.WriteByte(s[i])
			i++
			continue
		}
		run := 1
		for i+run < len(s) && s[i+run] == '*' {
			run++
		}
		matched := false
		for l := min(run, 3); l >= 1; l-- {
			start := i + run
			if start >= len(s) || s[start] == ' ' {
				continue
			}
			delim := strings.Repeat("*", l)
			rel := strings.Index(s[start:], delim)
			if rel <= 0 {
				continue
			}
			// Leading asterisks beyond the delimiter are literal.
			lit.WriteString(strings.Repeat("*", run-l))
			flushLit()
			content := s[start : start+rel]
			out = append(out, finalize(content, emphasisFor(l), ScriptNone)...)
			i = start + rel + l
			matched = true
			break
		}
		if !matched {
			lit.WriteString(strings.Repeat("*", run))
			i += run
		}
	}
	flushLit()
	return out
}

// emphasisFor maps delimiter length to emphasis.
func emphasisFor(l int) Emphasis {
	switch l {
	case 3:
		return BoldItalic
	case 2:
		return Bold
	default:
		return Italic
	}
}

// finalize splits text on upright markers, restores protected literals and
// emits the resulting spans.
func finalize(text string, emph Emphasis, script Script) RichText {
	var out RichText
	var b strings.Builder
	upright := false
	flush := func() {
		if b.Len() == 0 {
			return
		}
		out = append(out, Span{
			Text:     unescapeLiterals.Replace(b.String()),
			Emphasis: emph,
			Script:   script,
			Upright:  upright,
		})
		b.Reset()
	}
	for _, r := range text {
		switch r {
		case uprightStart:
			flush()
			upright = true
		case uprightEnd:
			flush()
			upright = false
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return out
}
