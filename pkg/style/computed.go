package style

import (
	"math"
	"strconv"
	"strings"
)

// Side indexes per-side box values.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

var sideNames = [...]string{"top", "right", "bottom", "left"}

func (s Side) String() string { return sideNames[s] }

// BorderSide is the resolved border of one box side.
type BorderSide struct {
	Width float64
	Style string
	Color Color
}

// Visible reports whether the side paints anything.
func (b BorderSide) Visible() bool {
	return b.Width > 0 && b.Style != "none" && b.Style != "hidden" && !b.Color.IsTransparent()
}

// Track is one grid column. A zero Fr with an auto Fixed length sizes to content.
type Track struct {
	Fr    float64
	Fixed Length
}

// Computed is the resolved style of one element.
type Computed struct {
	Display  string
	Position string

	Color      Color
	Background Color
	Gradient   *Gradient

	FontFamily     string
	FontSize       float64
	FontWeight     int
	FontStyle      string
	LineHeight     float64
	LetterSpacing  float64
	TextAlign      string
	TextDecoration string
	TextTransform  string
	WhiteSpace     string

	Padding Edges
	Margin  Edges
	Border  [4]BorderSide
	Radius  float64

	FlexDirection  string
	FlexWrap       string
	AlignItems     string
	JustifyContent string
	FlexGrow       float64
	FlexShrink     float64
	FlexBasis      Length
	RowGap         Length
	ColumnGap      Length
	GridColumns    []Track

	Width, Height            Length
	MaxWidth                 Length
	Top, Right, Bottom, Left Length

	Opacity   float64
	Overflow  string
	Transform string
	ObjectFit string

	lineHeightFactor float64
}

// AllowedProperties lists the properties written back as inline declarations
// when a tree is flattened, in output order.
var AllowedProperties = []string{
	"color",
	"background-color",
	"font-family",
	"font-size",
	"font-weight",
	"line-height",
	"padding",
	"margin",
	"border",
	"display",
	"flex-direction",
	"align-items",
	"justify-content",
	"gap",
	"text-decoration",
	"width",
	"height",
}

// DefaultBorderColor is the border color every element starts with.
var DefaultBorderColor = Color{R: 229, G: 231, B: 235, A: 1}

// Initial returns the style of the document root before any declarations.
func Initial() *Computed {
	c := &Computed{
		Color:            Black,
		FontFamily:       "ui-sans-serif, system-ui, sans-serif",
		FontSize:         RootFontSize,
		FontWeight:       400,
		FontStyle:        "normal",
		lineHeightFactor: 1.5,
		TextAlign:        "left",
		TextDecoration:   "none",
		TextTransform:    "none",
		WhiteSpace:       "normal",
	}
	c.LineHeight = c.FontSize * c.lineHeightFactor
	c.reset("block")
	return c
}

// Child returns the starting style of a child element: inherited properties
// are copied, everything else is reset.
func (c *Computed) Child(tag string) *Computed {
	n := &Computed{
		Color:            c.Color,
		FontFamily:       c.FontFamily,
		FontSize:         c.FontSize,
		FontWeight:       c.FontWeight,
		FontStyle:        c.FontStyle,
		LineHeight:       c.LineHeight,
		lineHeightFactor: c.lineHeightFactor,
		LetterSpacing:    c.LetterSpacing,
		TextAlign:        c.TextAlign,
		TextDecoration:   c.TextDecoration,
		TextTransform:    c.TextTransform,
		WhiteSpace:       c.WhiteSpace,
	}
	n.reset(DefaultDisplay(tag))
	return n
}

func (c *Computed) reset(display string) {
	c.Display = display
	c.Position = "static"
	c.Background = Transparent
	c.Gradient = nil
	c.Padding = Uniform(Pixels(0))
	c.Margin = Uniform(Pixels(0))
	for i := range c.Border {
		c.Border[i] = BorderSide{Style: "solid", Color: DefaultBorderColor}
	}
	c.FlexDirection = "row"
	c.FlexWrap = "nowrap"
	c.AlignItems = "normal"
	c.JustifyContent = "normal"
	c.FlexShrink = 1
	c.Opacity = 1
	c.Overflow = "visible"
	c.ObjectFit = "fill"
}

// DefaultDisplay is the display value of an element before any rules apply.
func DefaultDisplay(tag string) string {
	switch strings.ToLower(tag) {
	case "span", "a", "strong", "em", "b", "i", "small", "br":
		return "inline"
	case "table":
		return "table"
	case "tr":
		return "table-row"
	case "td", "th":
		return "table-cell"
	}
	return "block"
}

// Element is the input to a cascade step.
type Element struct {
	Tag   string
	Class string
	Style Declarations
	// AfterSibling is true when the element has an element sibling before it.
	AfterSibling bool
}

// Cascade resolves an element's style from its parent's computed style.
// parentSiblings are the parent's sibling rules ("space-y"), applied when
// el.AfterSibling is set. The element's own sibling rules are returned for
// use with its children. A nil parent means el is the root.
func (s *Sheet) Cascade(parent *Computed, parentSiblings Declarations, el Element) (*Computed, Declarations) {
	var c *Computed
	if parent == nil {
		c = Initial()
		c.Display = DefaultDisplay(el.Tag)
	} else {
		c = parent.Child(el.Tag)
	}
	self, siblings := s.Resolve(el.Class)

	decls := make(Declarations, 0, len(self)+len(parentSiblings)+len(el.Style))
	decls = append(decls, self...)
	if el.AfterSibling {
		decls = append(decls, parentSiblings...)
	}
	decls = append(decls, el.Style...)
	c.Apply(parent, decls)
	return c, siblings
}

// Apply applies declarations in order. Font size is resolved first so that
// em lengths in the same list see the final value.
func (c *Computed) Apply(parent *Computed, decls Declarations) {
	parentSize := RootFontSize
	if parent != nil {
		parentSize = parent.FontSize
	}
	if v, ok := decls.Get("font-size"); ok && v != "inherit" {
		if l, err := ParseLength(v, parentSize); err == nil {
			if px, ok := l.Resolve(parentSize); ok {
				c.FontSize = px
			}
		}
	}
	if c.lineHeightFactor > 0 {
		c.LineHeight = c.FontSize * c.lineHeightFactor
	}
	for _, d := range decls {
		if d.Property == "font-size" {
			continue
		}
		c.apply(parent, d.Property, strings.TrimSpace(d.Value))
	}
}

func (c *Computed) apply(parent *Computed, prop, v string) {
	v = strings.TrimSuffix(strings.TrimSpace(strings.TrimSuffix(v, "!important")), ";")
	lv := strings.ToLower(v)
	if lv == "inherit" {
		c.inherit(parent, prop)
		return
	}
	length := func() (Length, bool) {
		l, err := ParseLength(lv, c.FontSize)
		return l, err == nil
	}
	color := func() (Color, bool) {
		if lv == "currentcolor" {
			return c.Color, true
		}
		col, err := ParseColor(lv)
		return col, err == nil
	}

	switch prop {
	case "display":
		c.Display = lv
	case "position":
		c.Position = lv
	case "color":
		if col, ok := color(); ok {
			c.Color = col
		}
	case "background-color":
		if col, ok := color(); ok {
			c.Background = col
		}
	case "background", "background-image":
		if strings.HasPrefix(lv, "linear-gradient(") {
			if g, err := ParseGradient(lv); err == nil {
				c.Gradient = g
			}
			return
		}
		if lv == "none" {
			c.Gradient = nil
			if prop == "background" {
				c.Background = Transparent
			}
			return
		}
		if col, ok := color(); ok && prop == "background" {
			c.Background = col
			c.Gradient = nil
		}
	case "font-family":
		c.FontFamily = v
	case "font-weight":
		c.FontWeight = parseWeight(lv, c.FontWeight)
	case "font-style":
		c.FontStyle = lv
	case "line-height":
		c.applyLineHeight(lv)
	case "letter-spacing":
		if lv == "normal" {
			c.LetterSpacing = 0
		} else if l, ok := length(); ok {
			c.LetterSpacing = l.Or(c.FontSize, 0)
		}
	case "text-align":
		c.TextAlign = lv
	case "text-decoration", "text-decoration-line":
		c.TextDecoration = strings.Fields(lv + " none")[0]
	case "text-transform":
		c.TextTransform = lv
	case "white-space":
		c.WhiteSpace = lv
	case "padding":
		if e, err := ParseEdges(lv, c.FontSize); err == nil {
			c.Padding = e
		}
	case "padding-top", "padding-right", "padding-bottom", "padding-left":
		if l, ok := length(); ok {
			setEdge(&c.Padding, prop, l)
		}
	case "margin":
		if e, err := ParseEdges(lv, c.FontSize); err == nil {
			c.Margin = e
		}
	case "margin-top", "margin-right", "margin-bottom", "margin-left":
		if l, ok := length(); ok {
			setEdge(&c.Margin, prop, l)
		}
	case "border":
		c.applyBorder(lv, Top, Right, Bottom, Left)
	case "border-top":
		c.applyBorder(lv, Top)
	case "border-right":
		c.applyBorder(lv, Right)
	case "border-bottom":
		c.applyBorder(lv, Bottom)
	case "border-left":
		c.applyBorder(lv, Left)
	case "border-width":
		if e, err := ParseEdges(lv, c.FontSize); err == nil {
			t, r, b, l := e.Px(0)
			c.Border[Top].Width, c.Border[Right].Width, c.Border[Bottom].Width, c.Border[Left].Width = t, r, b, l
		}
	case "border-top-width", "border-right-width", "border-bottom-width", "border-left-width":
		if l, ok := length(); ok {
			c.Border[sideOf(prop)].Width = l.Or(0, 0)
		}
	case "border-style":
		for i := range c.Border {
			c.Border[i].Style = lv
		}
	case "border-color":
		if col, ok := color(); ok {
			for i := range c.Border {
				c.Border[i].Color = col
			}
		}
	case "border-top-color", "border-right-color", "border-bottom-color", "border-left-color":
		if col, ok := color(); ok {
			c.Border[sideOf(prop)].Color = col
		}
	case "border-radius":
		if l, ok := length(); ok {
			c.Radius = l.Or(0, 0)
		}
	case "flex-direction":
		c.FlexDirection = lv
	case "flex-wrap":
		c.FlexWrap = lv
	case "align-items":
		c.AlignItems = lv
	case "justify-content":
		c.JustifyContent = lv
	case "flex":
		c.applyFlex(lv)
	case "flex-grow":
		c.FlexGrow = parseNumber(lv, c.FlexGrow)
	case "flex-shrink":
		c.FlexShrink = parseNumber(lv, c.FlexShrink)
	case "gap":
		parts := strings.Fields(lv)
		if len(parts) == 0 {
			return
		}
		row, err := ParseLength(parts[0], c.FontSize)
		if err != nil {
			return
		}
		col := row
		if len(parts) > 1 {
			if l, err := ParseLength(parts[1], c.FontSize); err == nil {
				col = l
			}
		}
		c.RowGap, c.ColumnGap = row, col
	case "row-gap":
		if l, ok := length(); ok {
			c.RowGap = l
		}
	case "column-gap":
		if l, ok := length(); ok {
			c.ColumnGap = l
		}
	case "grid-template-columns":
		c.GridColumns = parseTracks(lv, c.FontSize)
	case "width":
		if l, ok := length(); ok {
			c.Width = l
		}
	case "height":
		if l, ok := length(); ok {
			c.Height = l
		}
	case "max-width":
		if lv == "none" {
			c.MaxWidth = AutoLength
		} else if l, ok := length(); ok {
			c.MaxWidth = l
		}
	case "top", "right", "bottom", "left":
		if l, ok := length(); ok {
			switch prop {
			case "top":
				c.Top = l
			case "right":
				c.Right = l
			case "bottom":
				c.Bottom = l
			default:
				c.Left = l
			}
		}
	case "opacity":
		c.Opacity = clamp(parseNumber(lv, c.Opacity), 0, 1)
	case "overflow":
		c.Overflow = lv
	case "transform":
		c.Transform = lv
	case "object-fit":
		c.ObjectFit = lv
	}
}

func (c *Computed) inherit(parent *Computed, prop string) {
	if parent == nil {
		return
	}
	switch prop {
	case "background-color", "background":
		c.Background = parent.Background
	case "display":
		c.Display = parent.Display
	case "padding":
		c.Padding = parent.Padding
	case "margin":
		c.Margin = parent.Margin
	case "border":
		c.Border = parent.Border
	case "opacity":
		c.Opacity = parent.Opacity
	}
	// inherited properties already carry the parent's value
}

func (c *Computed) applyLineHeight(v string) {
	if v == "normal" {
		c.lineHeightFactor = 0
		c.LineHeight = 0
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		c.lineHeightFactor = f
		c.LineHeight = f * c.FontSize
		return
	}
	if l, err := ParseLength(v, c.FontSize); err == nil {
		if px, ok := l.Resolve(c.FontSize); ok {
			c.lineHeightFactor = 0
			c.LineHeight = px
		}
	}
}

func (c *Computed) applyBorder(v string, sides ...Side) {
	width, bstyle, col := -1.0, "", Color{}
	hasColor := false
	if v == "none" || v == "0" {
		width = 0
	}
	for _, tok := range splitSpaces(v) {
		switch tok {
		case "none", "hidden", "solid", "dashed", "dotted", "double":
			bstyle = tok
			continue
		case "thin":
			width = 1
			continue
		case "medium":
			width = 3
			continue
		case "thick":
			width = 5
			continue
		}
		if l, err := ParseLength(tok, c.FontSize); err == nil && !l.IsAuto() {
			width = l.Or(0, 0)
			continue
		}
		if tok == "currentcolor" {
			col, hasColor = c.Color, true
			continue
		}
		if pc, err := ParseColor(tok); err == nil {
			col, hasColor = pc, true
		}
	}
	for _, s := range sides {
		b := BorderSide{Width: 3, Style: "none", Color: c.Color}
		if width >= 0 {
			b.Width = width
		}
		if bstyle != "" {
			b.Style = bstyle
		}
		if hasColor {
			b.Color = col
		}
		c.Border[s] = b
	}
}

func (c *Computed) applyFlex(v string) {
	switch v {
	case "none":
		c.FlexGrow, c.FlexShrink, c.FlexBasis = 0, 0, AutoLength
		return
	case "auto":
		c.FlexGrow, c.FlexShrink, c.FlexBasis = 1, 1, AutoLength
		return
	}
	parts := strings.Fields(v)
	if len(parts) == 0 {
		return
	}
	c.FlexGrow = parseNumber(parts[0], c.FlexGrow)
	c.FlexShrink = 1
	c.FlexBasis = Pixels(0)
	if len(parts) > 1 {
		c.FlexShrink = parseNumber(parts[1], 1)
	}
	if len(parts) > 2 {
		if l, err := ParseLength(parts[2], c.FontSize); err == nil {
			c.FlexBasis = l
		}
	}
}

// BorderWidths returns the per-side border widths that actually paint.
func (c *Computed) BorderWidths() (top, right, bottom, left float64) {
	w := func(s Side) float64 {
		b := c.Border[s]
		if b.Style == "none" || b.Style == "hidden" {
			return 0
		}
		return b.Width
	}
	return w(Top), w(Right), w(Bottom), w(Left)
}

// Gaps returns the resolved row and column gaps, with "normal" as zero.
func (c *Computed) Gaps(refW, refH float64) (row, col float64) {
	return c.RowGap.Or(refH, 0), c.ColumnGap.Or(refW, 0)
}

// Hidden reports whether the element generates no box.
func (c *Computed) Hidden() bool {
	return c.Display == "none"
}

// Inline reports whether the element participates in inline layout.
func (c *Computed) Inline() bool {
	return c.Display == "inline"
}

// FlexContainer reports whether children are laid out as flex items.
func (c *Computed) FlexContainer() bool {
	return c.Display == "flex" || c.Display == "inline-flex"
}

// GridContainer reports whether children are laid out in a grid.
func (c *Computed) GridContainer() bool {
	return c.Display == "grid" || c.Display == "inline-grid"
}

// Absolute reports whether the element is taken out of flow.
func (c *Computed) Absolute() bool {
	return c.Position == "absolute" || c.Position == "fixed"
}

// PrimaryFamily returns the first family of the font stack without quotes.
func (c *Computed) PrimaryFamily() string {
	first, _, _ := strings.Cut(c.FontFamily, ",")
	return strings.Trim(strings.TrimSpace(first), `'"`)
}

// AllowList serializes the allowed properties as declarations, in the
// order of AllowedProperties, using computed (resolved) values.
func (c *Computed) AllowList() Declarations {
	out := make(Declarations, 0, len(AllowedProperties))
	add := func(p, v string) {
		if v != "" {
			out = append(out, Declaration{Property: p, Value: v})
		}
	}
	for _, p := range AllowedProperties {
		switch p {
		case "color":
			add(p, c.Color.CSS())
		case "background-color":
			add(p, c.Background.CSS())
		case "font-family":
			add(p, c.FontFamily)
		case "font-size":
			add(p, formatNumber(c.FontSize)+"px")
		case "font-weight":
			add(p, strconv.Itoa(c.FontWeight))
		case "line-height":
			if c.LineHeight <= 0 {
				add(p, "normal")
			} else {
				add(p, formatNumber(c.LineHeight)+"px")
			}
		case "padding":
			add(p, c.Padding.CSS())
		case "margin":
			add(p, c.Margin.CSS())
		case "border":
			if v, ok := c.borderShorthand(); ok {
				add(p, v)
				continue
			}
			for _, side := range []Side{Top, Right, Bottom, Left} {
				add(p+"-"+side.String(), c.borderSide(side))
			}
		case "display":
			add(p, c.Display)
		case "flex-direction":
			add(p, c.FlexDirection)
		case "align-items":
			add(p, c.AlignItems)
		case "justify-content":
			add(p, c.JustifyContent)
		case "gap":
			add(p, c.gapShorthand())
		case "text-decoration":
			add(p, c.TextDecoration+" solid "+c.Color.CSS())
		case "width":
			add(p, c.Width.CSS())
		case "height":
			add(p, c.Height.CSS())
		}
	}
	return out
}

// borderShorthand reports false when the sides differ; the sides are then
// written as longhands.
func (c *Computed) borderShorthand() (string, bool) {
	for _, b := range c.Border[1:] {
		if b != c.Border[Top] {
			return "", false
		}
	}
	return c.borderSide(Top), true
}

// borderSide is the computed value of one side. A side without a style has
// no width.
func (c *Computed) borderSide(s Side) string {
	b := c.Border[s]
	w := b.Width
	if b.Style == "none" || b.Style == "hidden" {
		w = 0
	}
	return formatNumber(w) + "px " + b.Style + " " + b.Color.CSS()
}

func (c *Computed) gapShorthand() string {
	gap := func(l Length) string {
		if l.IsAuto() {
			return "normal"
		}
		return l.CSS()
	}
	row, col := gap(c.RowGap), gap(c.ColumnGap)
	if row == col {
		return row
	}
	return row + " " + col
}

func setEdge(e *Edges, prop string, l Length) {
	switch sideOf(prop) {
	case Top:
		e.Top = l
	case Right:
		e.Right = l
	case Bottom:
		e.Bottom = l
	case Left:
		e.Left = l
	}
}

func sideOf(prop string) Side {
	switch {
	case strings.Contains(prop, "-top"):
		return Top
	case strings.Contains(prop, "-right"):
		return Right
	case strings.Contains(prop, "-bottom"):
		return Bottom
	}
	return Left
}

func parseWeight(v string, current int) int {
	switch v {
	case "normal":
		return 400
	case "bold":
		return 700
	case "bolder":
		return min(current+300, 900)
	case "lighter":
		return max(current-300, 100)
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 1000 {
		return n
	}
	return current
}

func parseNumber(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) {
		return def
	}
	return f
}

func parseTracks(v string, fontSize float64) []Track {
	var out []Track
	for _, tok := range splitSpaces(v) {
		if inner, ok := strings.CutPrefix(tok, "repeat("); ok {
			args := splitTopLevel(strings.TrimSuffix(inner, ")"))
			if len(args) != 2 {
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				continue
			}
			t := parseTrack(args[1], fontSize)
			for range n {
				out = append(out, t)
			}
			continue
		}
		out = append(out, parseTrack(tok, fontSize))
	}
	return out
}

func parseTrack(tok string, fontSize float64) Track {
	tok = strings.TrimSpace(tok)
	if inner, ok := strings.CutPrefix(tok, "minmax("); ok {
		args := splitTopLevel(strings.TrimSuffix(inner, ")"))
		if len(args) == 2 {
			return parseTrack(args[1], fontSize)
		}
	}
	if fr, ok := strings.CutSuffix(tok, "fr"); ok {
		return Track{Fr: parseNumber(fr, 1)}
	}
	l, err := ParseLength(tok, fontSize)
	if err != nil {
		return Track{}
	}
	return Track{Fixed: l}
}

// splitSpaces splits on whitespace outside parentheses.
func splitSpaces(s string) []string {
	var (
		out   []string
		depth int
		start = -1
	)
	for i, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
		case (r == ' ' || r == '\t' || r == '\n') && depth == 0:
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
