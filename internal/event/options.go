package event

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithErrorHandler sets the function that receives handler errors and
// recovered panics. The default discards them.
func WithErrorHandler(h ErrorHandler) BusOption {
	return func(b *Bus) {
		if h != nil {
			b.onError = h
		}
	}
}
