package mambo

// Model is a pure prediction kernel over a weight vector and one sample's
// features. The trainer core never looks inside it.
type Model func(weights Vec, features Vec) float64

// LinearModel is the kernel for the sparse linear SVM: a plain dot product.
func LinearModel(weights Vec, features Vec) float64 {
	return weights.Dot(features)
}
