package connection

type ReqPlacement struct {
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Orientation string `json:"orientation"`
}

type ReqAttack struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
