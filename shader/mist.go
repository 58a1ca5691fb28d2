package shader

// mistFragmentSource is the mist effect, written against WebGL2 (ESSL 3.00)
// and translated to the desktop dialect at load time. Every uniform prefixed
// with u_ other than u_time, u_resolution and u_mouse is fed from a parameter.
const mistFragmentSource = `#version 300 es
precision highp float;

out vec4 fragColor;

uniform float u_time;
uniform vec2 u_resolution;
uniform vec2 u_mouse;

uniform float u_timeScale;
uniform vec2 u_flow;
uniform vec2 u_swirlFreq;
uniform float u_swirlStrength;

uniform float u_mistScaleA;
uniform float u_mistScaleB;
uniform float u_waterScale;
uniform float u_waterStrength;
uniform float u_detailScaleA;
uniform float u_detailStrengthA;
uniform float u_detailScaleB;
uniform float u_detailStrengthB;
uniform float u_mixBase;
uniform float u_mixDetail;
uniform float u_mistLow;
uniform float u_mistHigh;
uniform float u_mistPow;

uniform float u_mouseFalloff;
uniform float u_mouseStrength;
uniform float u_mouseWaveFreq;
uniform float u_mouseWaveFalloff;
uniform float u_mouseWaveStrength;

uniform float u_accentScaleA;
uniform float u_accentScaleB;
uniform vec2 u_accentSpeedA;
uniform vec2 u_accentSpeedB;
uniform float u_accentStrength;
uniform float u_hueDriftStrength;

uniform float u_enableBloom;
uniform float u_enableMouseGlow;
uniform float u_enableVignette;
uniform float u_enablePostNoise;
uniform float u_bloomLow;
uniform float u_bloomHigh;
uniform float u_bloomStrength;
uniform float u_mouseGlowStrength;
uniform float u_vignetteOuter;
uniform float u_vignetteInner;
uniform float u_vignetteMin;
uniform float u_postNoiseAmount;
uniform float u_postNoiseScale;
uniform float u_postNoiseSpeed;
uniform float u_postNoiseMaskScale;
uniform vec2 u_postNoiseMaskFlow;
uniform float u_postNoiseMaskLow;
uniform float u_postNoiseMaskHigh;

uniform vec3 u_colorDeep;
uniform vec3 u_colorMauve;
uniform vec3 u_colorPink;
uniform vec3 u_colorPale;
uniform vec3 u_colorPeriwinkle;
uniform vec3 u_colorOrchid;
uniform vec3 u_bloomTint;

float hash(vec2 p) {
  p = fract(p * vec2(123.34, 345.45));
  p += dot(p, p + 34.345);
  return fract(p.x * p.y);
}

float noise(vec2 p) {
  vec2 i = floor(p);
  vec2 f = fract(p);
  f = f * f * (3.0 - 2.0 * f);

  float a = hash(i + vec2(0.0, 0.0));
  float b = hash(i + vec2(1.0, 0.0));
  float c = hash(i + vec2(0.0, 1.0));
  float d = hash(i + vec2(1.0, 1.0));

  return mix(mix(a, b, f.x), mix(c, d, f.x), f.y);
}

float fbm(vec2 p) {
  float value = 0.0;
  float amp = 0.6;
  for (int i = 0; i < 4; i++) {
    value += amp * noise(p);
    p *= 1.85;
    amp *= 0.54;
  }
  return value;
}

float softMist(vec2 p) {
  float m = 0.0;
  m += fbm(p);
  m += fbm(p + vec2(0.09, -0.07));
  m += fbm(p + vec2(-0.08, 0.11));
  return m / 3.0;
}

void main() {
  vec2 uv = (gl_FragCoord.xy / u_resolution) * 2.0 - 1.0;
  uv.x *= u_resolution.x / u_resolution.y;

  vec2 mouse = u_mouse * 2.0 - 1.0;
  mouse.x *= u_resolution.x / u_resolution.y;

  float t = u_time * u_timeScale;
  vec2 flow = vec2(t * u_flow.x, -t * u_flow.y);
  vec2 swirl = vec2(
    sin((uv.y + t * u_swirlFreq.x) * 2.4),
    cos((uv.x - t * u_swirlFreq.y) * 2.1)
  ) * u_swirlStrength;

  float mistBase = softMist(uv * u_mistScaleA + flow + swirl);
  float mistDetail = softMist(uv * u_mistScaleB - flow * 0.62 + swirl * 0.35);
  float waterSheen = noise(uv * u_waterScale + vec2(t * 0.28, -t * 0.24)) * u_waterStrength;
  float microDetail = noise(uv * u_detailScaleA + vec2(-t * 0.34, t * 0.26)) * u_detailStrengthA;
  microDetail += noise(uv * u_detailScaleB + vec2(t * 0.22, t * 0.16)) * u_detailStrengthB;

  float mist = mistBase * u_mixBase + mistDetail * u_mixDetail + waterSheen + microDetail;
  mist = smoothstep(u_mistLow, u_mistHigh, mist);
  mist = pow(mist, u_mistPow);

  float distToMouse = length(uv - mouse);
  float mouseBloom = exp(-distToMouse * distToMouse * u_mouseFalloff);
  float mouseSoftWave = sin(u_mouseWaveFreq * distToMouse - u_time * 2.2)
    * exp(-distToMouse * u_mouseWaveFalloff)
    * u_mouseWaveStrength;

  mist += mouseBloom * u_mouseStrength;
  mist += mouseSoftWave;
  mist = clamp(mist, 0.0, 1.25);

  vec3 color = mix(u_colorDeep, u_colorMauve, smoothstep(0.05, 0.70, mist));
  color = mix(color, u_colorPink, smoothstep(0.35, 0.95, mist + uv.y * 0.04));
  color = mix(color, u_colorPale, smoothstep(0.58, 1.08, mist));

  vec2 colorDriftA = uv * u_accentScaleA + vec2(-t * u_accentSpeedA.x, t * u_accentSpeedA.y) + swirl * 0.45;
  vec2 colorDriftB = uv * u_accentScaleB + vec2(t * u_accentSpeedB.x, -t * u_accentSpeedB.y);
  float colorLayer = noise(colorDriftA) * 0.65 + noise(colorDriftB) * 0.35;
  colorLayer = smoothstep(0.28, 0.86, colorLayer);

  vec3 movingAccent = mix(u_colorOrchid, u_colorPeriwinkle, colorLayer);
  color = mix(color, movingAccent, colorLayer * u_accentStrength);

  float hueDrift = sin((uv.x + uv.y) * 2.0 + t) * u_hueDriftStrength;
  color += vec3(0.03, -0.01, 0.04) * hueDrift;

  float bloom = smoothstep(u_bloomLow, u_bloomHigh, mist);
  color += u_bloomTint * bloom * u_bloomStrength * u_enableBloom;
  color += vec3(0.05, 0.02, 0.08) * mouseBloom * u_mouseGlowStrength * u_enableMouseGlow;

  float vignette = smoothstep(u_vignetteOuter, u_vignetteInner, length(uv));
  float vignetteFactor = mix(1.0, mix(u_vignetteMin, 1.0, vignette), u_enableVignette);
  color *= vignetteFactor;

  vec2 postMaskUv = uv * u_postNoiseMaskScale + vec2(t * u_postNoiseMaskFlow.x, -t * u_postNoiseMaskFlow.y);
  float postMask = noise(postMaskUv);
  postMask = smoothstep(u_postNoiseMaskLow, u_postNoiseMaskHigh, postMask);

  float fineScale = 2.0 + u_postNoiseScale * 6.0;
  vec2 grainUv = gl_FragCoord.xy * fineScale;
  float grainA = hash(grainUv + vec2(t * (71.0 + 19.0 * u_postNoiseSpeed), -t * (113.0 + 23.0 * u_postNoiseSpeed)));
  float grainB = hash(grainUv.yx + vec2(-t * (89.0 + 17.0 * u_postNoiseSpeed), t * (137.0 + 29.0 * u_postNoiseSpeed)));
  float grain = grainA - grainB;

  float luma = dot(color, vec3(0.299, 0.587, 0.114));
  float midMask = 1.0 - abs(luma * 2.0 - 1.0);
  float grainStrength = u_enablePostNoise * u_postNoiseAmount * postMask * (0.5 + 0.5 * midMask);
  color += vec3(grain * grainStrength);

  fragColor = vec4(clamp(color, 0.0, 1.0), 1.0);
}
`
