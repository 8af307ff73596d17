package signature_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigkit/pkg/signature"
)

func TestHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		platform signature.Platform
		value    string
		want     string
		linkable bool
	}{
		{"github handle expands", signature.GitHub, "octocat", "https://github.com/octocat", true},
		{"twitter strips at sign", signature.Twitter, "@jack", "https://twitter.com/jack", true},
		{"linkedin handle", signature.LinkedIn, "@janelee", "https://linkedin.com/in/janelee", true},
		{"telegram handle", signature.Telegram, "jane", "https://t.me/jane", true},
		{"existing url passes through", signature.GitHub, "https://github.com/alexdev", "https://github.com/alexdev", true},
		{"other scheme passes through", signature.LinkedIn, "http://example.com/@me", "http://example.com/@me", true},
		{"discord is display only", signature.Discord, "user#1234", "", false},
		{"discord url is display only", signature.Discord, "https://discord.gg/abc", "", false},
		{"unknown platform", signature.Platform("myspace"), "tom", "", false},
		{"empty value", signature.GitHub, "  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := signature.Href(tt.platform, tt.value)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.linkable, ok)
		})
	}
}

func TestHref_Idempotent(t *testing.T) {
	t.Parallel()

	first, ok := signature.Href(signature.GitHub, "octocat")
	require.True(t, ok)
	second, ok := signature.Href(signature.GitHub, first)
	require.True(t, ok)
	assert.Equal(t, first, second, "an expanded URL must not be expanded again")
}

func TestSocials_Active(t *testing.T) {
	t.Parallel()

	t.Run("filters empty and unknown", func(t *testing.T) {
		t.Parallel()
		s := signature.Socials{
			signature.Discord:         "user#1234",
			signature.GitHub:          "octocat",
			signature.Twitter:         "",
			signature.Platform("icq"): "12345",
		}
		links := s.Active()
		require.Len(t, links, 2)

		assert.Equal(t, signature.GitHub, links[0].Platform)
		assert.Equal(t, "https://github.com/octocat", links[0].Href)
		assert.True(t, links[0].Linkable)

		assert.Equal(t, signature.Discord, links[1].Platform)
		assert.Empty(t, links[1].Href)
		assert.False(t, links[1].Linkable)
		assert.Equal(t, "user#1234", links[1].Value)
	})

	t.Run("nil map", func(t *testing.T) {
		t.Parallel()
		var s signature.Socials
		assert.Empty(t, s.Active())
	})
}

func TestPlatform_Label(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Linkedin", signature.LinkedIn.Label())
	assert.Equal(t, "Github", signature.GitHub.Label())
	assert.True(t, signature.Discord.Known())
	assert.False(t, signature.Discord.Linkable())
	assert.False(t, signature.Platform("icq").Known())
}

func TestWebsite(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "https://www.codelabs.dev", signature.WebsiteHref("www.codelabs.dev"))
	assert.Equal(t, "http://acme.io", signature.WebsiteHref("http://acme.io"))
	assert.Empty(t, signature.WebsiteHref(""))
	assert.Equal(t, "acme.io/about", signature.DisplayURL("https://acme.io/about"))
	assert.Equal(t, "www.acme.io", signature.DisplayURL("www.acme.io"))
}

func TestData_Merge(t *testing.T) {
	t.Parallel()

	base := signature.Preset(signature.Tech)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		t.Parallel()
		got := base.Merge(signature.Patch{Name: signature.String("Jane Lee")})
		assert.Equal(t, "Jane Lee", got.Name)
		assert.Equal(t, base.Email, got.Email)
		assert.Equal(t, "Alex Rodriguez", base.Name, "receiver must not change")
	})

	t.Run("social patch sets and clears", func(t *testing.T) {
		t.Parallel()
		got := base.Merge(signature.Patch{Socials: map[signature.Platform]string{
			signature.GitHub:  "",
			signature.Discord: "alex#0001",
		}})
		assert.Empty(t, got.Socials[signature.GitHub])
		assert.Equal(t, "alex#0001", got.Socials[signature.Discord])
		assert.Equal(t, "https://github.com/alexdev", base.Socials[signature.GitHub])
	})

	t.Run("json patch", func(t *testing.T) {
		t.Parallel()
		var p signature.Patch
		require.NoError(t, json.Unmarshal([]byte(`{"email":"","socials":{"twitter":"@alex"}}`), &p))
		assert.False(t, p.IsEmpty())
		got := base.Merge(p)
		assert.Empty(t, got.Email)
		assert.Equal(t, "@alex", got.Socials[signature.Twitter])
		assert.Equal(t, base.Phone, got.Phone)
	})
}

func TestData_IsZero(t *testing.T) {
	t.Parallel()
	assert.True(t, signature.Data{}.IsZero())
	assert.True(t, signature.Data{Socials: signature.Socials{signature.GitHub: ""}}.IsZero())
	assert.False(t, signature.Data{Location: "Oslo"}.IsZero())
}

func TestStyle(t *testing.T) {
	t.Parallel()

	t.Run("unknown template falls back", func(t *testing.T) {
		t.Parallel()
		s := signature.Style{Template: "brutalist"}.Normalize()
		assert.Equal(t, signature.Tech, s.Template)
		assert.Equal(t, "#6366f1", s.PrimaryColor)
		assert.Equal(t, "#ffffff", s.TextColor)
		assert.Equal(t, "#000000", s.BackgroundColor)
	})

	t.Run("parse template", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, signature.Elegant, signature.ParseTemplate(" Elegant "))
		assert.Equal(t, signature.Tech, signature.ParseTemplate(""))
	})

	t.Run("palette branch", func(t *testing.T) {
		t.Parallel()
		light := signature.Style{TextColor: "#000000"}
		dark := signature.Style{TextColor: "#111111"}
		assert.Equal(t, "#666", light.Pick("#666", "#999"))
		assert.Equal(t, "#999", dark.Pick("#666", "#999"))
	})

	t.Run("merge", func(t *testing.T) {
		t.Parallel()
		tpl := signature.Startup
		s := signature.DefaultStyle().Merge(signature.StylePatch{Template: &tpl})
		assert.Equal(t, signature.Startup, s.Template)
		assert.Equal(t, "#6366f1", s.PrimaryColor)
	})

	t.Run("catalog covers templates", func(t *testing.T) {
		t.Parallel()
		catalog := signature.Catalog()
		require.Len(t, catalog, len(signature.Templates()))
		for i, tpl := range signature.Templates() {
			assert.Equal(t, tpl, catalog[i].ID)
			assert.True(t, tpl.Valid())
		}
	})
}

func TestPreset(t *testing.T) {
	t.Parallel()

	tech := signature.Preset(signature.Tech)
	assert.Equal(t, "Alex Rodriguez", tech.Name)
	assert.Equal(t, tech, signature.Preset(signature.Startup), "startup shares the tech preset")

	tech.Socials[signature.GitHub] = "changed"
	assert.Equal(t, "https://github.com/alexdev", signature.Preset(signature.Tech).Socials[signature.GitHub],
		"presets must be returned as copies")

	data, style := signature.Default()
	assert.Equal(t, "Alex Rodriguez", data.Name)
	assert.Equal(t, signature.DefaultStyle(), style)
}

func TestStore(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := signature.NewStore(signature.WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	data, style := signature.Default()
	saved, err := store.Save(ctx, data, style)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, fixed, saved.CreatedAt)
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, signature.ErrNotFound)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = store.Save(canceled, data, style)
	assert.ErrorIs(t, err, context.Canceled)
}
