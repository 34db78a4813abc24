package cli

import "github.com/alexanderramin/scoutline/internal/app"

func (a *App) importAthleteUseCase() app.ImportAthleteUseCase {
	if a.ImportAthlete != nil {
		return a.ImportAthlete
	}
	return a.Import
}

func (a *App) refreshUseCase() app.RefreshUseCase {
	return a.Trigger
}

func (a *App) triggerUseCase() app.TriggerUseCase {
	return a.Trigger
}

func (a *App) surfacedUseCase() app.SurfacedSuggestionsUseCase {
	return a.Suggestions
}

func (a *App) pendingCountUseCase() app.PendingCountUseCase {
	return a.Suggestions
}

func (a *App) lifecycleUseCase() app.SuggestionLifecycleUseCase {
	return a.Suggestions
}
