package domain

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroclimatic/bulletins/pkg/bulletin"
)

func validCard() *Card {
	return &Card{
		ID:       uuid.New().String(),
		Name:     "Alerta de heladas",
		CardType: "alert",
		Content: bulletin.CardContent{
			BackgroundColor: "#e0f2fe",
			BackgroundURL:   "https://cdn.example.org/frost.png",
			Blocks: []bulletin.Block{
				{Fields: []bulletin.Field{{FieldID: "msg", Type: bulletin.FieldTypeText}}},
			},
		},
	}
}

func TestCard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Card)
		wantErr string
	}{
		{name: "valid", mutate: func(*Card) {}},
		{name: "relative background path", mutate: func(c *Card) { c.Content.BackgroundURL = "/assets/bg.png" }},
		{name: "transparent background", mutate: func(c *Card) { c.Content.BackgroundColor = "transparent" }},
		{name: "rgb background", mutate: func(c *Card) { c.Content.BackgroundColor = "rgb(10,20,30)" }},
		{name: "id not uuid", mutate: func(c *Card) { c.ID = "c1" }, wantErr: "id must be a UUID"},
		{name: "missing name", mutate: func(c *Card) { c.Name = "" }, wantErr: "name is required"},
		{name: "missing type", mutate: func(c *Card) { c.CardType = "" }, wantErr: "card_type is required"},
		{name: "bad color", mutate: func(c *Card) { c.Content.BackgroundColor = "blueish" }, wantErr: "background_color"},
		{name: "bad url", mutate: func(c *Card) { c.Content.BackgroundURL = "not a url" }, wantErr: "background_url"},
		{
			name:    "field without id",
			mutate:  func(c *Card) { c.Content.Blocks[0].Fields[0].FieldID = "" },
			wantErr: "blocks[0].fields[0]: field_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(card)
			err := card.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCard_ToBulletinCard(t *testing.T) {
	card := validCard()
	bc := card.ToBulletinCard()
	assert.Equal(t, card.ID, bc.ID)
	assert.Equal(t, "alert", bc.CardType)
	assert.Equal(t, "#e0f2fe", bc.Content.BackgroundColor)
}

func TestCreateCardRequest_Validate(t *testing.T) {
	req := CreateCardRequest{Name: "Riego", CardType: "advice"}
	card, err := req.Validate()
	require.NoError(t, err)
	assert.True(t, isUUID(card.ID))

	req.Name = ""
	_, err = req.Validate()
	assert.ErrorContains(t, err, "invalid create card request")
}

func TestGetCardsRequest_FromURLParams(t *testing.T) {
	a, b := uuid.New().String(), uuid.New().String()

	var req GetCardsRequest
	require.NoError(t, req.FromURLParams(url.Values{"card_type": {"alert"}, "ids": {a + ", ," + b}}))
	assert.Equal(t, "alert", req.CardType)
	assert.Equal(t, []string{a, b}, req.IDs)

	assert.Error(t, req.FromURLParams(url.Values{"ids": {"c1"}}))
}

func TestGetCardRequest_FromURLParams(t *testing.T) {
	var req GetCardRequest
	assert.NoError(t, req.FromURLParams(url.Values{"id": {uuid.New().String()}}))
	assert.Error(t, req.FromURLParams(url.Values{}))
}
