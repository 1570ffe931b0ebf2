package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// Register creates an account.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.doJSON(ctx, http.MethodPost, "register/", in, nil)
}

// Login exchanges credentials for an access/refresh token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	var out TokenPair
	body := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "login/", body, &out); err != nil {
		return nil, err
	}
	if out.Access == "" {
		return nil, &InvalidResponseError{Err: fmt.Errorf("login: response has no access token")}
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refresh string) (string, error) {
	var out struct {
		Access string `json:"access"`
	}
	body := map[string]string{"refresh": refresh}
	if err := c.doJSON(ctx, http.MethodPost, "token/refresh/", body, &out); err != nil {
		return "", err
	}
	if out.Access == "" {
		return "", &InvalidResponseError{Err: fmt.Errorf("refresh: response has no access token")}
	}
	return out.Access, nil
}

// GoogleLogin exchanges a verified Google identity for a token pair.
func (c *Client) GoogleLogin(ctx context.Context, idToken, email string) (*TokenPair, error) {
	var out TokenPair
	body := map[string]string{"token": idToken, "email": email}
	if err := c.doJSON(ctx, http.MethodPost, "google/", body, &out); err != nil {
		return nil, err
	}
	if out.Access == "" {
		return nil, &InvalidResponseError{Err: fmt.Errorf("google login: response has no access token")}
	}
	return &out, nil
}

// GetProfile fetches the caller's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.getJSON(ctx, "profile/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile replaces the whole academic object and returns the
// server's view of the profile.
func (c *Client) UpdateProfile(ctx context.Context, info AcademicInfo) (*Profile, error) {
	var out Profile
	body := map[string]any{"academic_info": info}
	if err := c.doJSON(ctx, http.MethodPut, "profile/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns the caller's prediction history.
func (c *Client) History(ctx context.Context) ([]Prediction, error) {
	var out []Prediction
	if err := c.getJSON(ctx, "dashboard/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Predict runs a prediction against the stored profile.
func (c *Client) Predict(ctx context.Context) (*PredictResult, error) {
	raw, err := c.do(ctx, http.MethodPost, "predict/", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, err
	}
	if err := validateResponse(PredictResultSchema, raw); err != nil {
		return nil, err
	}
	var out PredictResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &InvalidResponseError{Content: raw, Err: fmt.Errorf("decode predict/: %w", err)}
	}
	return &out, nil
}

// SubmitFeedback stores the caller's rating of one of their predictions.
func (c *Client) SubmitFeedback(ctx context.Context, id int64, patch FeedbackPatch) (*Prediction, error) {
	var out Prediction
	path := fmt.Sprintf("predictions/%d/feedback/", id)
	if err := c.doJSON(ctx, http.MethodPatch, path, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Insights fetches market insights for the caller.
func (c *Client) Insights(ctx context.Context) (*Insights, error) {
	raw, err := c.do(ctx, http.MethodGet, "insights/", "", nil)
	if err != nil {
		return nil, err
	}
	if err := validateResponse(InsightsSchema, raw); err != nil {
		return nil, err
	}
	var out Insights
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &InvalidResponseError{Content: raw, Err: fmt.Errorf("decode insights/: %w", err)}
	}
	return &out, nil
}

// AdminStats fetches the console counters. Staff only.
func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var out AdminStats
	if err := c.getJSON(ctx, "admin/stats/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminPredictions fetches every prediction, newest first. Staff only.
func (c *Client) AdminPredictions(ctx context.Context) ([]Prediction, error) {
	var out []Prediction
	if err := c.getJSON(ctx, "admin/predictions/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePrediction applies a moderation patch. Staff only.
func (c *Client) UpdatePrediction(ctx context.Context, id int64, patch FlagPatch) (*Prediction, error) {
	var out Prediction
	path := fmt.Sprintf("admin/predictions/%d/", id)
	if err := c.doJSON(ctx, http.MethodPatch, path, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminUsers lists all accounts. Staff only.
func (c *Client) AdminUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.getJSON(ctx, "admin/users/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser removes an account. Staff only.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("admin/users/%d/", id), nil, nil)
}

// Retrain asks the backend to retrain the model, optionally uploading a
// new dataset. It returns the backend's message verbatim.
func (c *Client) Retrain(ctx context.Context, in RetrainInput) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("include_feedback", strconv.FormatBool(in.IncludeFeedback)); err != nil {
		return "", fmt.Errorf("write include_feedback: %w", err)
	}
	if in.File != "" {
		if err := attachFile(mw, in.File); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "admin/retrain/", mw.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &InvalidResponseError{Content: raw, Err: fmt.Errorf("decode admin/retrain/: %w", err)}
	}
	return out.Message, nil
}

func attachFile(mw *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy dataset: %w", err)
	}
	return nil
}
