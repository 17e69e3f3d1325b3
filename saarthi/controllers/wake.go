package controllers

import (
	"fmt"
	"strings"

	"saarthi/saarthi/services/voicelog"
	"saarthi/saarthi/services/wake"
	"saarthi/saarthi/utils/types"
)

type WakeController struct {
	detector *wake.Detector
	voice    *voicelog.Ring
}

func NewWakeController(detector *wake.Detector, voice *voicelog.Ring) *WakeController {
	return &WakeController{detector: detector, voice: voice}
}

func (c *WakeController) Detect(req types.WakeWordRequest) (types.WakeWordResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return types.WakeWordResponse{}, fmt.Errorf("%w: text is required", ErrInvalidRequest)
	}
	res := c.detector.Detect(req.Text)
	out := types.WakeWordResponse{Detected: res.Detected, Confidence: res.Confidence, Text: req.Text}
	if res.Detected {
		phrase := res.MatchedPhrase
		out.WakeWordFound = &phrase
		c.log(fmt.Sprintf("wake word %q detected (%.2f)", phrase, res.Confidence), "success")
	} else {
		c.log(fmt.Sprintf("no wake word in %q", req.Text), "info")
	}
	return out, nil
}

func (c *WakeController) log(msg, typ string) {
	if c.voice != nil {
		c.voice.Add(msg, typ)
	}
}
