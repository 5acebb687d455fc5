package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/storyloom/engine/pkg/generation"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// checkAvailability asks the API whether a blueprint exists for the
// selected combination.
func checkAvailability(client *http.Client, baseURL, tension, ending, modifier string) (*generation.Availability, error) {
	q := url.Values{}
	q.Set("tension", tension)
	q.Set("ending", ending)
	q.Set("modifier", modifier)

	resp, err := client.Get(baseURL + "/v1/blueprints/check?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var availability generation.Availability
	if err := json.Unmarshal(body, &availability); err != nil {
		return nil, fmt.Errorf("failed to parse availability response: %w", err)
	}
	return &availability, nil
}

// GenerateRequest matches the API request structure
type GenerateRequest struct {
	Concept  string `json:"concept"`
	Tension  string `json:"tension"`
	Ending   string `json:"ending"`
	Modifier string `json:"modifier"`
}

// GenerateResponse matches the API response structure
type GenerateResponse struct {
	ID     uuid.UUID                `json:"id"`
	Output *generation.Phase1Output `json:"output"`
}

func runGeneration(client *http.Client, baseURL string, req GenerateRequest) (*GenerateResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/generate",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("generation failed: %s", errorResp.Error)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}
	return &genResp, nil
}

func getGeneration(client *http.Client, baseURL string, id uuid.UUID) (*generation.Phase1Output, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/generations/%s", baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get generation: %s", errorResp.Error)
	}

	var out generation.Phase1Output
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}
	return &out, nil
}
