package models

// DefaultProjectSet returns the project set written when no configuration exists.
// A fresh value is built on every call so callers may mutate it.
func DefaultProjectSet() *ProjectSet {
	options := NewOptionNode()
	options.Set("Front Dashboard", NewExecutable(
		OpenEditor{Path: "front-dashboard"},
		RunCommand{Path: "front-dashboard", Command: "npm install"},
		RunCommand{Path: "front-dashboard", Command: "npm start"},
	))
	options.Set("Back Dashboard", NewExecutable(
		OpenEditor{Path: "back-dashboard"},
		RunCommand{Path: "back-dashboard", Command: "npm install"},
		RunCommand{Path: "back-dashboard", Command: "npm run dev"},
	))
	options.Set("Back API", NewExecutable(
		OpenEditor{Path: "back-api"},
		RunCommand{Path: "back-api", Command: "pip install -r requirements.txt"},
		RunCommand{Path: "back-api", Command: "python app.py"},
	))
	options.Set("Todos", NewExecutable(
		OpenEditor{Path: "front-dashboard"},
		OpenEditor{Path: "back-dashboard"},
		OpenEditor{Path: "back-api"},
		RunCommand{Path: "front-dashboard", Command: "npm install"},
		RunCommand{Path: "back-dashboard", Command: "npm install"},
		RunCommand{Path: "back-api", Command: "pip install -r requirements.txt"},
	))

	set := NewProjectSet()
	_ = set.Add(&Project{
		Name:    DefaultProjectName,
		Path:    "C:/projetos/super-pagamentos",
		Options: options,
	})
	return set
}

// DefaultProjectName names the single project of DefaultProjectSet.
const DefaultProjectName = "Super Pagamentos"
