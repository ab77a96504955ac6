// Package handler implements the HTTP endpoints of the progression API.
package handler

// Path parameter names shared with the router
const (
	paramUserID  = "userID"
	paramQuestID = "questID"
	paramEventID = "eventID"
)

// URL patterns for the router, expressed with the parameter names above
const (
	PatternUserProgress  = "/users/{" + paramUserID + "}/progress"
	PatternUserActivity  = "/users/{" + paramUserID + "}/activity"
	PatternQuestComplete = "/users/{" + paramUserID + "}/quests/{" + paramQuestID + "}/complete"
	PatternSavings       = "/users/{" + paramUserID + "}/savings"
	PatternSavingsEvent  = "/users/{" + paramUserID + "}/savings/{" + paramEventID + "}"
)
