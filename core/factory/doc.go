// Package factory instantiates pluggable modules from configuration.
//
// A module is described by a ModuleConfig: a type name selecting the
// registered constructor and a raw settings map that the constructor decodes
// with Decode.
//
//	reg := factory.NewRegistry[provider.WeatherProvider]()
//	_ = reg.Register("static", func(conf map[string]any) (provider.WeatherProvider, error) {
//	    var obs model.WeatherObservation
//	    if err := factory.Decode(conf, &obs); err != nil {
//	        return nil, err
//	    }
//	    return simulated.NewStaticWeather(obs), nil
//	})
//	p, err := reg.Create(factory.ModuleConfig{Type: "static", Conf: map[string]any{"temperature": 21}})
package factory
