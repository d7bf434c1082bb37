package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"clubhub/internal/entity"
)

// Member is the identity service's view of a club member.
type Member struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

const MemberStatusActive = "active"

// Service is the catalog's description of a bookable service.
type Service struct {
	ID                   string `json:"id"`
	DurationMinutes      int    `json:"duration_minutes"`
	PriceBonos           int    `json:"price_bonos"`
	PriceFiat            int    `json:"price_fiat"`
	RequiresProfessional bool   `json:"requires_professional"`
}

// BonusPackage is a purchasable bundle of bonos.
type BonusPackage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Bonos int    `json:"bonos"`
}

type MemberDirectory interface {
	GetMember(ctx context.Context, id string) (*Member, error)
	ActivateMember(ctx context.Context, id string) error
}

type Catalog interface {
	GetService(ctx context.Context, id string) (*Service, error)
	GetBonusPackage(ctx context.Context, id string) (*BonusPackage, error)
}

type httpMemberDirectory struct {
	baseURL string
	client  *http.Client
}

func NewMemberDirectory(baseURL string) MemberDirectory {
	return &httpMemberDirectory{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (d *httpMemberDirectory) GetMember(ctx context.Context, id string) (*Member, error) {
	var member Member
	if err := getJSON(ctx, d.client, fmt.Sprintf("%s/api/v1/members/%s", d.baseURL, id), &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (d *httpMemberDirectory) ActivateMember(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/api/v1/members/%s/activate", d.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("member service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return entity.ErrNotFound
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("member service returned %d", resp.StatusCode)
	}
	return nil
}

type httpCatalog struct {
	baseURL string
	client  *http.Client
}

func NewCatalog(baseURL string) Catalog {
	return &httpCatalog{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *httpCatalog) GetService(ctx context.Context, id string) (*Service, error) {
	var service Service
	if err := getJSON(ctx, c.client, fmt.Sprintf("%s/api/v1/services/%s", c.baseURL, id), &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *httpCatalog) GetBonusPackage(ctx context.Context, id string) (*BonusPackage, error) {
	var pkg BonusPackage
	if err := getJSON(ctx, c.client, fmt.Sprintf("%s/api/v1/packages/%s", c.baseURL, id), &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return entity.ErrNotFound
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
