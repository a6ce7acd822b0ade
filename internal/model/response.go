package model

// BusinessResponse is the wire form of a Business. Identifiers are hex strings.
type BusinessResponse struct {
	ID      string           `json:"_id"`
	Name    string           `json:"name"`
	Town    string           `json:"town"`
	Rating  int              `json:"rating"`
	Reviews []ReviewResponse `json:"reviews"`
}

// ReviewResponse is the wire form of a Review.
type ReviewResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Comment  string `json:"comment"`
	Stars    int    `json:"stars"`
}

// URLResponse carries the link to a created or updated resource.
type URLResponse struct {
	URL string `json:"url"`
}

// ToBusinessResponse stringifies b and every embedded review id.
func ToBusinessResponse(b *Business) BusinessResponse {
	return BusinessResponse{
		ID:      b.ID.Hex(),
		Name:    b.Name,
		Town:    b.Town,
		Rating:  b.Rating,
		Reviews: ToReviewResponses(b.Reviews),
	}
}

// ToBusinessResponses converts a page of businesses. The result is never nil.
func ToBusinessResponses(businesses []Business) []BusinessResponse {
	out := make([]BusinessResponse, 0, len(businesses))
	for i := range businesses {
		out = append(out, ToBusinessResponse(&businesses[i]))
	}
	return out
}

// ToReviewResponse stringifies the review id.
func ToReviewResponse(r Review) ReviewResponse {
	return ReviewResponse{
		ID:       r.ID.Hex(),
		Username: r.Username,
		Comment:  r.Comment,
		Stars:    r.Stars,
	}
}

// ToReviewResponses converts reviews keeping their order. The result is never nil.
func ToReviewResponses(reviews []Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ToReviewResponse(r))
	}
	return out
}
