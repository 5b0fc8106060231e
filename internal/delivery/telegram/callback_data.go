package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionAnswer    = "ans"
	actionNext      = "next"
	actionRetry     = "retry"
	actionLearn     = "learn"
	actionChallenge = "challenge"
	actionRoots     = "roots"
	actionRoot      = "root"
	actionProgress  = "progress"
	actionReset     = "reset"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	if i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// buildAnswerCallback builds callback data for answering question questionIdx of a session.
func buildAnswerCallback(sessionID string, questionIdx, option int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{sessionID, strconv.Itoa(questionIdx), strconv.Itoa(option)},
	}.encode()
}

func buildNextCallback(sessionID string) string {
	return callbackData{Action: actionNext, Params: []string{sessionID}}.encode()
}

func buildRetryCallback(sessionID string) string {
	return callbackData{Action: actionRetry, Params: []string{sessionID}}.encode()
}

func buildLearnCallback() string {
	return actionLearn
}

func buildChallengeCallback(stage int) string {
	return callbackData{Action: actionChallenge, Params: []string{strconv.Itoa(stage)}}.encode()
}

// buildRootsPageCallback builds callback data for a page of the root list.
// Kind and query may be empty.
func buildRootsPageCallback(page int, kind, query string) string {
	return callbackData{
		Action: actionRoots,
		Params: []string{strconv.Itoa(page), kind, callbackQuery(query)},
	}.encode()
}

// maxCallbackQuery keeps roots callbacks under Telegram's 64 byte limit.
const maxCallbackQuery = 32

// callbackQuery strips separators from a search query and truncates it
// on a rune boundary.
func callbackQuery(q string) string {
	q = strings.ReplaceAll(q, ":", " ")
	if len(q) <= maxCallbackQuery {
		return q
	}
	cut := 0
	for i := range q {
		if i > maxCallbackQuery {
			break
		}
		cut = i
	}
	return q[:cut]
}

func buildRootCallback(id int) string {
	return callbackData{Action: actionRoot, Params: []string{strconv.Itoa(id)}}.encode()
}

func buildProgressCallback() string {
	return actionProgress
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
