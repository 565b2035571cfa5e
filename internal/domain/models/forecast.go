package models

// Prediction is the demand estimate for one product from the latest forecast run.
type Prediction struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	PredictedQty int     `json:"predicted_qty"`
	Confidence   float64 `json:"confidence"`
	Comment      string  `json:"comment"`
}
