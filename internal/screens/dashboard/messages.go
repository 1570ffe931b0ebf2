package dashboard

import "github.com/abhisek/careerlens/internal/api"

type historyMsg struct {
	history []api.Prediction
	err     error
}

type predictMsg struct {
	result     *api.PredictResult
	history    []api.Prediction
	refreshErr error // history reload failed after a successful predict
	err        error
}

type feedbackMsg struct {
	history    []api.Prediction
	refreshErr error
	err        error
}
