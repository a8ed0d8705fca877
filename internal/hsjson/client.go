// Package hsjson downloads card definitions from the HearthstoneJSON API and
// stores them as local YAML files the card loader can read offline.
package hsjson

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const BaseURL = "https://api.hearthstonejson.com/v1/latest/enUS"

type Client struct {
	client  *http.Client
	dataDir string
	force   bool
}

func NewClient(dataDir string, force bool) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		dataDir: dataDir,
		force:   force,
	}
}

// APICard is the subset of the HearthstoneJSON card document the simulator
// can represent.
type APICard struct {
	Name        string `json:"name"`
	CardClass   string `json:"cardClass"`
	Cost        int    `json:"cost"`
	Type        string `json:"type"`
	Attack      int    `json:"attack"`
	Health      int    `json:"health"`
	Collectible bool   `json:"collectible"`
}

// FetchCards downloads the collectible card list.
func (c *Client) FetchCards() ([]APICard, error) {
	url := fmt.Sprintf("%s/cards.collectible.json", BaseURL)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}

	var cards []APICard
	if err := json.NewDecoder(resp.Body).Decode(&cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Supported reports whether the card translates to a definition the engine
// can play: minions and spells of a known class.
func Supported(card APICard) bool {
	if card.Name == "" {
		return false
	}
	switch card.Type {
	case "MINION", "SPELL":
	default:
		return false
	}
	_, ok := classNames[card.CardClass]
	return ok
}

// classNames maps HearthstoneJSON class tags to the deck directive names.
var classNames = map[string]string{
	"NEUTRAL": "ALL",
	"MAGE":    "MAGE",
	"DRUID":   "DRUID",
	"HUNTER":  "HUNTER",
	"PALADIN": "PALADIN",
	"PRIEST":  "PRIEST",
	"ROGUE":   "ROGUE",
	"SHAMAN":  "SHAMAN",
	"WARLOCK": "WARLOCK",
	"WARRIOR": "WARRIOR",
}

// cardYAML is the on-disk shape, matching the card loader's schema. Fetched
// cards carry no scripted effects, so minions arrive vanilla and spells
// effectless until someone writes their steps.
type cardYAML struct {
	Name   string `yaml:"name"`
	Class  string `yaml:"class"`
	Kind   string `yaml:"kind"`
	Mana   int    `yaml:"mana"`
	Attack int    `yaml:"attack,omitempty"`
	Health int    `yaml:"health,omitempty"`
}

// SaveCard writes one card to cards/<dash-name>.yaml under the data
// directory. Existing files are kept unless the client was built with force.
func (c *Client) SaveCard(card APICard) error {
	dashName := strings.ReplaceAll(strings.ToLower(card.Name), " ", "-")
	relPath := filepath.Join("cards", fmt.Sprintf("%s.yaml", dashName))
	localPath := filepath.Join(c.dataDir, relPath)

	if !c.force {
		if _, err := os.Stat(localPath); err == nil {
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return err
	}

	kind := "spell"
	if card.Type == "MINION" {
		kind = "minion"
	}
	out := cardYAML{
		Name:   card.Name,
		Class:  classNames[card.CardClass],
		Kind:   kind,
		Mana:   card.Cost,
		Attack: card.Attack,
		Health: card.Health,
	}

	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		logrus.WithField("card", card.Name).Warnf("failed to encode card: %v", err)
		return err
	}
	return nil
}
