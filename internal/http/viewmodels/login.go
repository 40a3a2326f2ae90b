package viewmodels

type LoginViewData struct {
	CSRFToken    string
	UserID       string
	Next         string
	ErrorMessage string
	Toast        *ToastViewData
}
