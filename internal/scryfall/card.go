package scryfall

import (
	"github.com/arcanaland/framesmith/internal/card"
)

type imageURIs struct {
	ArtCrop string `json:"art_crop"`
}

type face struct {
	Name       string     `json:"name"`
	TypeLine   string     `json:"type_line"`
	ManaCost   string     `json:"mana_cost"`
	Colors     []string   `json:"colors"`
	OracleText string     `json:"oracle_text"`
	FlavorText string     `json:"flavor_text"`
	Power      *string    `json:"power"`
	Toughness  *string    `json:"toughness"`
	Artist     string     `json:"artist"`
	ImageURIs  *imageURIs `json:"image_uris"`
}

type cardObject struct {
	face
	OracleID        string   `json:"oracle_id"`
	ColorIdentity   []string `json:"color_identity"`
	Rarity          string   `json:"rarity"`
	Set             string   `json:"set"`
	CollectorNumber string   `json:"collector_number"`
	ProducedMana    []string `json:"produced_mana"`
	CardFaces       []face   `json:"card_faces"`
}

type searchResult struct {
	Data []cardObject `json:"data"`
}

func (o cardObject) front() face {
	if len(o.CardFaces) > 0 {
		return o.CardFaces[0]
	}
	return o.face
}

func (o cardObject) artCrop() string {
	if o.ImageURIs != nil && o.ImageURIs.ArtCrop != "" {
		return o.ImageURIs.ArtCrop
	}
	for _, f := range o.CardFaces {
		if f.ImageURIs != nil && f.ImageURIs.ArtCrop != "" {
			return f.ImageURIs.ArtCrop
		}
	}
	return ""
}

// attributes flattens the object, taking text fields from the front face
// when the card is double-faced.
func (o cardObject) attributes() card.Attributes {
	front := o.front()
	a := card.Attributes{
		Name:            pick(o.Name, front.Name),
		TypeLine:        pick(o.TypeLine, front.TypeLine),
		ManaCost:        pick(o.ManaCost, front.ManaCost),
		RulesText:       pick(o.OracleText, front.OracleText),
		FlavorText:      pick(o.FlavorText, front.FlavorText),
		Power:           o.Power,
		Toughness:       o.Toughness,
		Rarity:          o.Rarity,
		SetCode:         o.Set,
		CollectorNumber: o.CollectorNumber,
		Artist:          pick(o.Artist, front.Artist),
		ArtCropRef:      o.artCrop(),
		ProducedMana:    o.ProducedMana,
	}
	if a.Power == nil && a.Toughness == nil {
		a.Power, a.Toughness = front.Power, front.Toughness
	}

	switch {
	case len(o.Colors) > 0:
		a.ColorIdentity = o.Colors
	case len(front.Colors) > 0:
		a.ColorIdentity = front.Colors
	default:
		a.ColorIdentity = o.ColorIdentity
	}
	a.ApplyTypeLine()
	return a
}

func pick(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
