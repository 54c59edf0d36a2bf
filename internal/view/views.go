package view

import "html/template"

// Shared partials compiled into every form template.
const partials = `
{{define "errors"}}{{if .}}<ul class="notice">
{{- range .}}
<li>{{.}}</li>
{{- end}}
</ul>{{end}}{{end}}
{{define "csrf"}}{{if .}}<input type="hidden" name="csrf_token" value="{{.}}">{{end}}{{end}}`

func form(name, body string) *template.Template {
	return template.Must(template.New(name).Parse(partials + body))
}

const Welcome = template.HTML(`<section class="hero">
<h2>Welcome to Motor Lot!</h2>
<p>Browse our inventory using the navigation above.</p>
</section>`)

var noticeTpl = template.Must(template.New("notice").Parse(`<p class="notice">{{.}}</p>`))

// Notice renders a single escaped notice paragraph.
func Notice(message string) template.HTML {
	out, _ := render(noticeTpl, message)
	return out
}

type LoginData struct {
	Email  string
	Errors []string
	CSRF   string
}

var loginTpl = form("login", `{{template "errors" .Errors}}
<form id="loginForm" action="/account/login" method="post">
{{template "csrf" .CSRF}}
<label for="account_email">Email</label>
<input type="email" id="account_email" name="account_email" value="{{.Email}}" required>
<label for="account_password">Password</label>
<input type="password" id="account_password" name="account_password" required>
<button type="submit">Login</button>
</form>
<p>No account? <a href="/account/register" title="Sign up">Sign up</a></p>`)

func LoginForm(d LoginData) (template.HTML, error) {
	return render(loginTpl, d)
}

type RegisterData struct {
	FirstName string
	LastName  string
	Email     string
	Errors    []string
	CSRF      string
}

var registerTpl = form("register", `{{template "errors" .Errors}}
<form id="registerForm" action="/account/register" method="post">
{{template "csrf" .CSRF}}
<label for="account_firstname">First name</label>
<input type="text" id="account_firstname" name="account_firstname" value="{{.FirstName}}" required>
<label for="account_lastname">Last name</label>
<input type="text" id="account_lastname" name="account_lastname" value="{{.LastName}}" required>
<label for="account_email">Email</label>
<input type="email" id="account_email" name="account_email" value="{{.Email}}" required>
<label for="account_password">Password</label>
<input type="password" id="account_password" name="account_password" required>
<button type="submit">Register</button>
</form>`)

func RegisterForm(d RegisterData) (template.HTML, error) {
	return render(registerTpl, d)
}

type AccountManagementData struct {
	ID        uint
	FirstName string
	Role      string
	Staff     bool
}

var accountManagementTpl = form("accountManagement", `<h2>Welcome {{.FirstName}}</h2>
<p><a href="/account/update/{{.ID}}" title="Update account information">Update account information</a></p>
{{if .Staff}}<h3>Inventory Management</h3>
<p><a href="/inv/" title="Manage inventory">Manage inventory</a></p>{{end}}`)

func AccountManagement(d AccountManagementData) (template.HTML, error) {
	return render(accountManagementTpl, d)
}

type AccountFormData struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
	Errors    []string
	CSRF      string
}

var accountUpdateTpl = form("accountUpdate", `{{template "errors" .Errors}}
<form id="updateAccountForm" action="/account/update" method="post">
{{template "csrf" .CSRF}}
<input type="hidden" name="account_id" value="{{.ID}}">
<label for="account_firstname">First name</label>
<input type="text" id="account_firstname" name="account_firstname" value="{{.FirstName}}" required>
<label for="account_lastname">Last name</label>
<input type="text" id="account_lastname" name="account_lastname" value="{{.LastName}}" required>
<label for="account_email">Email</label>
<input type="email" id="account_email" name="account_email" value="{{.Email}}" required>
<button type="submit">Update account</button>
</form>
<h3>Change password</h3>
<form id="updatePasswordForm" action="/account/update-password" method="post">
{{template "csrf" .CSRF}}
<input type="hidden" name="account_id" value="{{.ID}}">
<label for="account_password">New password</label>
<input type="password" id="account_password" name="account_password" required>
<button type="submit">Change password</button>
</form>`)

func AccountUpdateForm(d AccountFormData) (template.HTML, error) {
	return render(accountUpdateTpl, d)
}

type InventoryManagementData struct {
	ClassificationSelect template.HTML
}

var inventoryManagementTpl = form("inventoryManagement", `<p><a href="/inv/add-classification" title="Add a classification">Add new classification</a></p>
<p><a href="/inv/add-inventory" title="Add a vehicle">Add new vehicle</a></p>
<h2>Manage Inventory</h2>
<p>Select a classification to see its vehicles.</p>
{{.ClassificationSelect}}
<table id="inventoryDisplay"></table>`)

func InventoryManagement(d InventoryManagementData) (template.HTML, error) {
	return render(inventoryManagementTpl, d)
}

type ClassificationFormData struct {
	Name   string
	Errors []string
	CSRF   string
}

var addClassificationTpl = form("addClassification", `{{template "errors" .Errors}}
<p>Name must be alphanumeric with no spaces.</p>
<form id="addClassificationForm" action="/inv/add-classification" method="post">
{{template "csrf" .CSRF}}
<label for="classification_name">Classification name</label>
<input type="text" id="classification_name" name="classification_name" value="{{.Name}}" required pattern="^[A-Za-z0-9]+$">
<button type="submit">Add classification</button>
</form>`)

func AddClassificationForm(d ClassificationFormData) (template.HTML, error) {
	return render(addClassificationTpl, d)
}

// InventoryFormData keeps submitted values as strings so a failed
// validation echoes back exactly what the user typed.
type InventoryFormData struct {
	ID                   uint
	ClassificationSelect template.HTML
	Make                 string
	Model                string
	Year                 string
	Description          string
	Image                string
	Thumbnail            string
	Price                string
	Miles                string
	Color                string
	Errors               []string
	CSRF                 string
}

const inventoryFields = `{{.ClassificationSelect}}
<label for="inv_make">Make</label>
<input type="text" id="inv_make" name="inv_make" value="{{.Make}}" required>
<label for="inv_model">Model</label>
<input type="text" id="inv_model" name="inv_model" value="{{.Model}}" required>
<label for="inv_year">Year</label>
<input type="number" id="inv_year" name="inv_year" value="{{.Year}}" min="1900" max="2099" required>
<label for="inv_description">Description</label>
<textarea id="inv_description" name="inv_description" required>{{.Description}}</textarea>
<label for="inv_image">Image path</label>
<input type="text" id="inv_image" name="inv_image" value="{{.Image}}" required>
<label for="inv_thumbnail">Thumbnail path</label>
<input type="text" id="inv_thumbnail" name="inv_thumbnail" value="{{.Thumbnail}}" required>
<label for="inv_price">Price</label>
<input type="number" id="inv_price" name="inv_price" value="{{.Price}}" min="0" step="0.01" required>
<label for="inv_miles">Miles</label>
<input type="number" id="inv_miles" name="inv_miles" value="{{.Miles}}" min="0" required>
<label for="inv_color">Color</label>
<input type="text" id="inv_color" name="inv_color" value="{{.Color}}" required>`

var addInventoryTpl = form("addInventory", `{{template "errors" .Errors}}
<form id="addInventoryForm" action="/inv/add-inventory" method="post">
{{template "csrf" .CSRF}}
`+inventoryFields+`
<button type="submit">Add vehicle</button>
</form>`)

func AddInventoryForm(d InventoryFormData) (template.HTML, error) {
	return render(addInventoryTpl, d)
}

var editInventoryTpl = form("editInventory", `{{template "errors" .Errors}}
<form id="editInventoryForm" action="/inv/update" method="post">
{{template "csrf" .CSRF}}
<input type="hidden" name="inv_id" value="{{.ID}}">
`+inventoryFields+`
<button type="submit">Update vehicle</button>
</form>`)

func EditInventoryForm(d InventoryFormData) (template.HTML, error) {
	return render(editInventoryTpl, d)
}

type DeleteConfirmData struct {
	ID    uint
	Make  string
	Model string
	Year  int
	Price string
	CSRF  string
}

var deleteConfirmTpl = form("deleteConfirm", `<p class="notice">Confirm deletion. This cannot be undone.</p>
<form id="deleteConfirmForm" action="/inv/delete" method="post">
{{template "csrf" .CSRF}}
<input type="hidden" name="inv_id" value="{{.ID}}">
<p>{{.Year}} {{.Make}} {{.Model}} &mdash; {{.Price}}</p>
<button type="submit">Delete vehicle</button>
</form>`)

func DeleteConfirm(d DeleteConfirmData) (template.HTML, error) {
	return render(deleteConfirmTpl, d)
}
