package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Maps known play commands to number of arguments
var commandNargs = map[string]int{
	"o": 2, // open (click)
	"c": 2, // chord
	"f": 2, // toggle flag
	"r": 0, // restart
	"d": 1, // change difficulty
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// commandResult carries whatever deltas the executed command produced.
type commandResult struct {
	Move *mines.MoveResult
	Flag *mines.FlagResult
}

func executeCommand(session *mines.Session, c string) (commandResult, error) {
	var res commandResult
	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return res, errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return res, errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "o":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return res, err
		}
		res.Move, err = session.Click(x, y)
		return res, err
	case "c":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return res, err
		}
		res.Move, err = session.Chord(x, y)
		return res, err
	case "f":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return res, err
		}
		res.Flag, err = session.ToggleFlag(x, y)
		return res, err
	case "r":
		return res, session.PrepareNewGame()
	case "d":
		return res, session.ChangeDifficulty(parts[1])
	}
	return res, errors.New("invalid command")
}
