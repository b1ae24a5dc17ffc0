// Package contract is the stable boundary layer for external callers of the
// service layer. It aliases the app DTOs so API and CLI code never imports
// internal/app directly.
package contract

import "github.com/abramin/Victus-sub005/internal/app"

type CreatePlanRequest = app.CreatePlanRequest

type RecalibrateRequest = app.RecalibrateRequest

type AnalysisRequest = app.AnalysisRequest

type CreateLogRequest = app.CreateLogRequest

type SessionPayload = app.SessionPayload

type SyncPatchRequest = app.SyncPatchRequest

type TrainingPatchRequest = app.TrainingPatchRequest

type UpdateProfileRequest = app.UpdateProfileRequest

type ChartRequest = app.ChartRequest

type LoadRequest = app.LoadRequest
