package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/mwalcott/motorlot/internal/models"
)

// VehicleIndex mirrors the inventory table into Elasticsearch. A nil or
// unconfigured index turns every call into a no-op so the rest of the app
// works without a cluster.
type VehicleIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func (ix *VehicleIndex) Enabled() bool {
	return ix != nil && ix.ES != nil
}

func (ix *VehicleIndex) IndexVehicle(ctx context.Context, v models.Vehicle) error {
	if !ix.Enabled() {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("encoding vehicle: %w", err)
	}

	res, err := ix.ES.Index(
		ix.Index,
		&buf,
		ix.ES.Index.WithDocumentID(strconv.FormatUint(uint64(v.ID), 10)),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indexing vehicle: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("indexing vehicle: %s", res.Status())
	}
	return nil
}

func (ix *VehicleIndex) DeleteVehicle(ctx context.Context, id uint) error {
	if !ix.Enabled() {
		return nil
	}

	res, err := ix.ES.Delete(
		ix.Index,
		strconv.FormatUint(uint64(id), 10),
		ix.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("deleting vehicle from index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("deleting vehicle from index: %s", res.Status())
	}
	return nil
}

func (ix *VehicleIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.Vehicle, error) {
	if !ix.Enabled() {
		return 0, nil, fmt.Errorf("search is not configured")
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"inv_make^2", "inv_model^2", "inv_description", "inv_color"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encoding query: %w", err)
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Index),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("searching vehicles: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("searching vehicles: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source models.Vehicle `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decoding search response: %w", err)
	}

	vehicles := make([]models.Vehicle, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		vehicles[i] = hit.Source
	}
	return r.Hits.Total.Value, vehicles, nil
}
