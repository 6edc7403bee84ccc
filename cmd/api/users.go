package main

import (
	"FoosTableApi/internal/data"
	"FoosTableApi/internal/validator"
	"errors"
	"net/http"
)

func (app *application) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := &data.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}

	err = user.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Users.Insert(user)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateEmail):
			v.AddError("email", "a user with this email address already exists")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.backgroundTask(func() {
		mailData := map[string]any{
			"firstName": user.FirstName,
			"userID":    user.ID,
		}

		err := app.mailer.Send(user.Email, "user_welcome.tmpl", mailData)
		if err != nil {
			app.logger.PrintError(err, nil)
		}
	})

	err = app.writeJSON(w, http.StatusCreated, envelope{"data": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.models.Users.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"data": users}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetLeaderboard ranks every registered player by cumulative wins.
func (app *application) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := app.models.Users.Leaderboard()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"data": users}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetUserActiveGames lists the running games a user plays in. The user id is
// part of the path; there is no ambient authenticated identity.
func (app *application) GetUserActiveGames(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	games, err := app.models.Games.GetActiveForUser(id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"data": envelope{"current_games": games}}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
