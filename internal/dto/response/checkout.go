package response

type Checkout struct {
	RedirectURL string `json:"redirect_url"`
}
