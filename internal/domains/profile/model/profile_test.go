package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeProfile() *Profile {
	avatar := "https://cdn.example.com/profiles/x/avatar.jpg"
	return &Profile{
		FullName: "Ana Petrova",
		Headline: "Certified yoga and mobility coach",
		Location: "Berlin",
		Bio:      strings.Repeat("Teaching vinyasa and mobility for eight years. ", 3),
		Experience: []ExperienceEntry{
			{Title: "Head Coach", Organization: "FlowHaus", StartYear: 2018},
		},
		Availability: []AvailabilitySlot{
			{Day: "monday", Start: "07:00", End: "12:00"},
		},
		Certifications: []string{"RYT-500"},
		Styles:         []string{"yoga"},
		AvatarURL:      &avatar,
	}
}

func TestValidateForSubmissionComplete(t *testing.T) {
	assert.NoError(t, completeProfile().ValidateForSubmission())
}

func TestValidateForSubmissionBioBoundary(t *testing.T) {
	p := completeProfile()

	p.Bio = strings.Repeat("a", 59)
	err := p.ValidateForSubmission()
	require.Error(t, err)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "bio", subErr.Field)
	assert.ErrorIs(t, err, ErrProfileIncomplete)

	p.Bio = strings.Repeat("a", 60)
	assert.NoError(t, p.ValidateForSubmission())
}

// Length minimums count characters, not bytes: a 30-rune accented bio
// occupies 60 bytes but is still too short.
func TestValidateForSubmissionLengthCountsRunes(t *testing.T) {
	p := completeProfile()

	p.Bio = strings.Repeat("é", 30)
	err := p.ValidateForSubmission()
	require.Error(t, err)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "bio", subErr.Field)

	p.Bio = strings.Repeat("é", 60)
	assert.NoError(t, p.ValidateForSubmission())

	p.Headline = strings.Repeat("ü", 9)
	err = p.ValidateForSubmission()
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "headline", subErr.Field)

	p.Headline = strings.Repeat("ü", 10)
	assert.NoError(t, p.ValidateForSubmission())
}

// The checks run in a fixed order and stop at the first failure, so a
// profile missing everything reports the name first, and fixing each
// field surfaces the next one.
func TestValidateForSubmissionFirstFailureWins(t *testing.T) {
	p := &Profile{}

	fixes := []struct {
		field string
		fix   func()
	}{
		{"full_name", func() { p.FullName = "Ana Petrova" }},
		{"headline", func() { p.Headline = "Certified yoga coach" }},
		{"location", func() { p.Location = "Berlin" }},
		{"bio", func() { p.Bio = strings.Repeat("a", 60) }},
		{"experience", func() { p.Experience = []ExperienceEntry{{Title: "Coach"}} }},
		{"availability", func() { p.Availability = []AvailabilitySlot{{Day: "monday"}} }},
		{"certifications", func() { p.Certifications = []string{"RYT-200"} }},
		{"styles", func() { p.Styles = []string{"yoga"} }},
		{"avatar", func() { avatar := "https://cdn.example.com/a.jpg"; p.AvatarURL = &avatar }},
	}

	for _, step := range fixes {
		err := p.ValidateForSubmission()
		require.Error(t, err, "expected failure before fixing %s", step.field)

		var subErr *SubmissionError
		require.ErrorAs(t, err, &subErr)
		assert.Equal(t, step.field, subErr.Field)

		step.fix()
	}

	assert.NoError(t, p.ValidateForSubmission())
}

func TestVisibilityRequiresVerifiedAndCompleted(t *testing.T) {
	p := &Profile{Status: StatusVerified, ProfileCompleted: true}
	assert.True(t, p.IsPubliclyVisible())
	assert.True(t, p.CanParticipate())

	p.ProfileCompleted = false
	assert.False(t, p.IsPubliclyVisible())

	p.ProfileCompleted = true
	p.Status = StatusSubmitted
	assert.False(t, p.CanParticipate())

	p.Status = StatusArchived
	assert.False(t, p.IsPubliclyVisible())
}

func TestSubmissionErrorUnwrapping(t *testing.T) {
	err := NewSubmissionError("bio", "too short")
	assert.True(t, errors.Is(err, ErrProfileIncomplete))
	assert.Contains(t, err.Error(), "too short")
}
